package invoice

import (
	"go.uber.org/fx"

	"github.com/involine/involine/internal/invoice/pdf"
	"github.com/involine/involine/internal/invoice/service"
)

var Module = fx.Module("invoice.service",
	fx.Provide(pdf.NewRenderer),
	fx.Provide(service.New),
)
