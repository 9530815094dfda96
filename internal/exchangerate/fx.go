package exchangerate

import "go.uber.org/fx"

var Module = fx.Module("exchangerate",
	fx.Provide(
		fx.Annotate(NewClient, fx.As(new(Resolver))),
	),
)
