package item

import (
	"github.com/involine/involine/internal/item/service"
	"go.uber.org/fx"
)

var Module = fx.Module("item.service",
	fx.Provide(service.New),
)
