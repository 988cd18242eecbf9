package cmd

import (
	"log/slog"

	"pharmaflow/internal/adapters/in/http"
	"pharmaflow/internal/adapters/out/postgres"
	"pharmaflow/internal/adapters/out/postgres/rolerepo"
	"pharmaflow/internal/adapters/out/sms"
	"pharmaflow/internal/core/application/usecases/commands"
	"pharmaflow/internal/core/application/usecases/queries"
	"pharmaflow/internal/core/ports"
	"pharmaflow/internal/jobs"
	"pharmaflow/internal/notifications"
	"pharmaflow/internal/realtime"

	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config      Config
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	roleRepo    *rolerepo.GormRoleRepository
	broadcaster *realtime.Broadcaster
	dispatcher  *notifications.Dispatcher
	logger      *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)

	smsClient, err := sms.NewGatewayClient(sms.Config{
		BaseURL: config.SMSGatewayURL,
		APIKey:  config.SMSGatewayAPIKey,
		Sender:  config.SMSSenderName,
	})
	if err != nil {
		log.Fatalf("cannot create sms gateway client: %v", err)
	}

	var orderUoWFactory commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return uowFactory.Create()
	})
	dispatcher, err := notifications.NewDispatcher(orderUoWFactory, smsClient, logger)
	if err != nil {
		log.Fatalf("cannot create notification dispatcher: %v", err)
	}

	return CompositionRoot{
		config:      config,
		gormDB:      gormDB,
		uowFactory:  *uowFactory,
		roleRepo:    rolerepo.NewGormRoleRepository(gormDB),
		broadcaster: realtime.NewBroadcaster(logger),
		dispatcher:  dispatcher,
		logger:      logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.broadcaster)
}

func (c *CompositionRoot) CreateAssignPharmacyCommandHandler() commands.AssignPharmacyCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignPharmacyCommandHandler(f, c.broadcaster)
}

func (c *CompositionRoot) CreateAcknowledgeAssignmentCommandHandler() commands.AcknowledgeAssignmentCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcknowledgeAssignmentCommandHandler(f, c.broadcaster)
}

func (c *CompositionRoot) CreateUpdateStatusCommandHandler() commands.UpdateStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateStatusCommandHandler(f, c.broadcaster, c.dispatcher)
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmPaymentCommandHandler(f, c.broadcaster, c.dispatcher)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderEventsQueryHandler() queries.GetOrderEventsQueryHandler {
	return queries.NewGetOrderEventsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateServer() *http.Server {
	return http.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateAssignPharmacyCommandHandler(),
		c.CreateAcknowledgeAssignmentCommandHandler(),
		c.CreateUpdateStatusCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetOrdersQueryHandler(),
		c.CreateGetOrderEventsQueryHandler(),
		c.CreatePharmacyRepository(),
	)
}

func (c *CompositionRoot) CreateAccessGate() *http.AccessGate {
	return http.NewAccessGate(
		c.roleRepo,
		c.roleRepo,
		c.config.AdminEmails,
		http.DefaultRoutePolicies(),
		c.logger,
	)
}

func (c *CompositionRoot) CreatePaymentWebhookHandler() *http.PaymentWebhookHandler {
	return http.NewPaymentWebhookHandler(
		c.config.PaymentWebhookSecret,
		c.CreateConfirmPaymentCommandHandler(),
		c.CreatePaymentUoWFactory(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateStreamHandler() *http.StreamHandler {
	return http.NewStreamHandler(
		c.broadcaster,
		c.CreatePharmacyRepository(),
		c.config.StreamHeartbeat,
		c.config.StreamRetry,
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreatePaymentUoWFactory(),
		c.CreateConfirmPaymentCommandHandler(),
		c.gormDB,
		c.config.InboxMaxAttempts,
		c.config.AckReminderThreshold,
		c.logger,
	)
}

func (c *CompositionRoot) CreatePaymentUoWFactory() commands.PaymentUoWFactory {
	return FuncPaymentUoWFactory(func() commands.PaymentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreatePharmacyRepository() ports.PharmacyRepository {
	return c.uowFactory.Create().PharmacyRepository()
}

// Dispatcher exposes the notification dispatcher so shutdown can wait for
// in-flight sends.
func (c *CompositionRoot) Dispatcher() *notifications.Dispatcher {
	return c.dispatcher
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncPaymentUoWFactory func() commands.PaymentUoW

func (f FuncPaymentUoWFactory) Create() commands.PaymentUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
