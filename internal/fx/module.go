package fx

import "go.uber.org/fx"

// CoreModule reúne config, banco e services, sem agendador nem camada HTTP.
var CoreModule = fx.Options(
	ConfigModule,
	TelemetryModule,
	InfrastructureModule,
	DomainModule,
)

// AppModule reúne todos os módulos da aplicação
var AppModule = fx.Options(
	CoreModule,
	SchedulerModule,
	MiddlewareModule,
	RoutesModule,
	ServerModule,
)
