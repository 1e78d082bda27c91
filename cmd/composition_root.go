package cmd

import (
	"log/slog"

	"dispatch/internal/adapters/out/notification"
	"dispatch/internal/adapters/out/payment"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	notifier   ports.NotificationService
	payments   ports.PaymentService
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:   notification.NewClient(config.NotificationServiceURL, config.CollaboratorTimeout),
		payments:   payment.NewClient(config.PaymentServiceURL, config.CollaboratorTimeout),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateDispatchOrderCommandHandler() commands.DispatchOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchOrderCommandHandler(f, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateStartDriverSearchCommandHandler() commands.StartDriverSearchCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	dispatcher := c.CreateDispatchOrderCommandHandler()
	return commands.NewStartDriverSearchCommandHandler(f, dispatcher)
}

func (c *CompositionRoot) CreateAcceptDeliveryRequestCommandHandler() commands.AcceptDeliveryRequestCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptDeliveryRequestCommandHandler(f, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateRejectDeliveryRequestCommandHandler() commands.RejectDeliveryRequestCommandHandler {
	var f commands.RequestUoWFactory = FuncRequestUoWFactory(func() commands.RequestUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRejectDeliveryRequestCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateDeliveryStatusCommandHandler() commands.UpdateDeliveryStatusCommandHandler {
	var f commands.OrderDriverUoWFactory = FuncOrderDriverUoWFactory(func() commands.OrderDriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateDeliveryStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateSweepOrdersCommandHandler() commands.SweepOrdersCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	policy := commands.SweepPolicy{
		PendingMaxAge:       c.config.PendingMaxAge,
		EscalationThreshold: c.config.EscalationThreshold,
		HardTimeout:         c.config.HardTimeout,
		MaxRadiusKm:         c.config.DispatchMaxRadiusKm,
	}
	dispatcher := c.CreateDispatchOrderCommandHandler()
	return commands.NewSweepOrdersCommandHandler(f, dispatcher, c.payments, policy, c.logger)
}

func (c *CompositionRoot) CreateGetDriverDeliveryRequestsQueryHandler() queries.GetDriverDeliveryRequestsQueryHandler {
	return queries.NewGetDriverDeliveryRequestsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersInSearchQueryHandler() queries.GetOrdersInSearchQueryHandler {
	return queries.NewGetOrdersInSearchQueryHandler(c.gormDB)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncRequestUoWFactory func() commands.RequestUoW

func (f FuncRequestUoWFactory) Create() commands.RequestUoW {
	return f()
}

type FuncOrderDriverUoWFactory func() commands.OrderDriverUoW

func (f FuncOrderDriverUoWFactory) Create() commands.OrderDriverUoW {
	return f()
}
