package ledgerentry

import (
	"github.com/involine/involine/internal/ledgerentry/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ledgerentry.service",
	fx.Provide(service.New),
)
