package main

import (
	"context"
	"fmt"
	"log"

	common_api "kliernav-crm/internal/common/api"
	"kliernav-crm/internal/common/models"
	"kliernav-crm/internal/config"
	"kliernav-crm/internal/database"
	"kliernav-crm/internal/features/access"
	"kliernav-crm/internal/features/assistant"
	"kliernav-crm/internal/features/audit"
	"kliernav-crm/internal/features/auth"
	"kliernav-crm/internal/features/event"
	"kliernav-crm/internal/features/lead"
	"kliernav-crm/internal/features/messaging"
	"kliernav-crm/internal/features/permission"
	"kliernav-crm/internal/features/role"
	"kliernav-crm/internal/features/service_catalog"
	"kliernav-crm/internal/features/task"
	"kliernav-crm/internal/features/user"
	"kliernav-crm/internal/logger"
	"kliernav-crm/internal/middleware"
	"kliernav-crm/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates the Fiber app with the shared error handler.
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute tags a constructor so Fx collects it into the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes calls Setup() on every collected route.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
}

var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer runs Fiber in a goroutine and shuts it down with the app.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			utils.SetSecret(cfg.JWTSecret)
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// roleCheckerAdapter lets the user feature validate role references without
// importing the role feature.
type roleCheckerAdapter struct {
	repo role.RoleRepository
}

func (a *roleCheckerAdapter) RoleExists(ctx context.Context, roleID string) bool {
	_, err := a.repo.FindByID(ctx, roleID)
	return err == nil
}

// roleSourceAdapter feeds role definitions to the access evaluator.
type roleSourceAdapter struct {
	repo role.RoleRepository
}

func (a *roleSourceAdapter) Role(id string) (*models.Role, bool) {
	r, err := a.repo.FindByID(context.Background(), id)
	if err != nil {
		return nil, false
	}
	return r, true
}

// leadCheckerAdapter validates lead references for tasks and events.
type leadCheckerAdapter struct {
	repo lead.LeadRepository
}

func (a *leadCheckerAdapter) LeadExists(ctx context.Context, leadID string) bool {
	_, err := a.repo.FindByID(ctx, leadID)
	return err == nil
}

// leadGetterAdapter resolves leads for the messaging feature.
type leadGetterAdapter struct {
	repo lead.LeadRepository
}

func (a *leadGetterAdapter) LeadByID(ctx context.Context, id string) (*models.Lead, error) {
	return a.repo.FindByID(ctx, id)
}

// visibleLeadsAdapter gives the assistant the actor's visible leads as
// grounding context.
type visibleLeadsAdapter struct {
	svc lead.LeadService
}

func (a *visibleLeadsAdapter) VisibleLeads(ctx context.Context, actor *models.User) ([]models.Lead, error) {
	return a.svc.ListLeads(ctx, actor, lead.ListFilter{})
}

// threadSourceAdapter hands conversation history to the assistant.
type threadSourceAdapter struct {
	repo messaging.ConversationRepository
}

func (a *threadSourceAdapter) Conversation(ctx context.Context, leadID string) (*models.Conversation, error) {
	return a.repo.FindByLead(ctx, leadID)
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			NewFiberServer,
			database.NewDatabase,

			permission.NewCatalog,
			lead.NewStageRegistry,
			messaging.NewHub,
			assistant.NewClient,

			audit.NewMemoryAuditRepository,
			audit.NewMongoAuditSink,
			role.NewRoleRepository,
			user.NewUserRepository,
			lead.NewLeadRepository,
			task.NewTaskRepository,
			event.NewEventRepository,
			service_catalog.NewServiceRepository,
			messaging.NewConversationRepository,

			audit.NewAuditService,
			access.NewEvaluator,
			role.NewRoleService,
			user.NewUserService,
			lead.NewLeadService,
			lead.NewSLAWatcher,
			task.NewTaskService,
			event.NewEventService,
			service_catalog.NewCatalogService,
			messaging.NewMessagingService,
			assistant.NewAssistantService,
			auth.NewAuthService,

			// Interface adapters to break circular dependencies and satisfy Fx
			func(r *audit.MemoryAuditRepository) audit.AuditRepository { return r },
			func(r user.UserRepository) role.MemberCounter { return r },
			func(r role.RoleRepository) user.RoleChecker { return &roleCheckerAdapter{repo: r} },
			func(r role.RoleRepository) access.RoleSource { return &roleSourceAdapter{repo: r} },
			func(r lead.LeadRepository) task.LeadChecker { return &leadCheckerAdapter{repo: r} },
			func(r lead.LeadRepository) event.LeadChecker { return &leadCheckerAdapter{repo: r} },
			func(r lead.LeadRepository) messaging.LeadGetter { return &leadGetterAdapter{repo: r} },
			func(s lead.LeadService) assistant.LeadReader { return s },
			func(s lead.LeadService) assistant.VisibleLeadsSource { return &visibleLeadsAdapter{svc: s} },
			func(r messaging.ConversationRepository) assistant.ThreadSource { return &threadSourceAdapter{repo: r} },
			func(s user.UserService) middleware.UserResolver { return s },
			func(e *access.Evaluator) middleware.Evaluator { return e },

			permission.NewPermissionController,
			audit.NewAuditController,
			role.NewRoleController,
			user.NewUserController,
			lead.NewLeadController,
			task.NewTaskController,
			event.NewEventController,
			service_catalog.NewServiceController,
			messaging.NewMessagingController,
			assistant.NewAssistantController,
			auth.NewAuthController,

			AsRoute(permission.NewPermissionApi),
			AsRoute(audit.NewAuditApi),
			AsRoute(role.NewRoleApi),
			AsRoute(user.NewUserApi),
			AsRoute(lead.NewLeadApi),
			AsRoute(task.NewTaskApi),
			AsRoute(event.NewEventApi),
			AsRoute(service_catalog.NewServiceApi),
			AsRoute(messaging.NewMessagingApi),
			AsRoute(assistant.NewAssistantApi),
			AsRoute(auth.NewAuthApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			RegisterAllRoutesWithAnnotation,
			StartServer,
			func(lc fx.Lifecycle, watcher *lead.SLAWatcher) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return watcher.Start()
					},
					OnStop: func(ctx context.Context) error {
						watcher.Stop()
						return nil
					},
				})
			},
			func(lc fx.Lifecycle, sink *audit.MongoAuditSink, logger *zap.Logger) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						if sink == nil {
							return nil
						}
						if err := sink.EnsureIndexes(ctx); err != nil {
							logger.Warn("audit sink index creation failed", zap.Error(err))
						}
						return nil
					},
				})
			},
		),
	)

	app.Run()
}
