package pages

import (
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"

	"github.com/Veraticus/painel/internal/aggregate"
	"github.com/Veraticus/painel/internal/common"
	"github.com/Veraticus/painel/internal/model"
	"github.com/Veraticus/painel/internal/schema"
	"github.com/Veraticus/painel/internal/source"
)

// KPI names a dashboard summary file (without extension) and its caption.
type KPI struct {
	File  string
	Label string
}

// Dashboard KPI files, read from the dashboard folder.
var (
	KPICurrent   = KPI{File: "saldo_atual", Label: "Saldo Atual"}
	KPIPaid      = KPI{File: "saldo_pago", Label: "Saldo Pago"}
	KPIToPay     = KPI{File: "saldo_a_pagar", Label: "Saldo a Pagar"}
	KPIReceived  = KPI{File: "saldo_recebido", Label: "Saldo Recebido"}
	KPIToReceive = KPI{File: "saldo_a_receber", Label: "Saldo a Receber"}
	KPIPending   = KPI{File: "saldo_pendente", Label: "Saldo Pendente"}
)

// MetricProjected labels the projected balance card.
const MetricProjected = "Saldo Previsto"

// KPIs lists the files read by the dashboard, in load order.
func KPIs() []KPI {
	return []KPI{KPIPaid, KPIPending, KPIReceived, KPICurrent, KPIToPay, KPIToReceive}
}

// DashboardOptions configures Dashboard.
type DashboardOptions struct {
	// OnLoad is called after each KPI file is read.
	OnLoad func(kpi KPI)
}

// Dashboard sums the "valor" column of each KPI file and derives the
// projected balance as received + paid - pending. A missing or unreadable
// file counts as zero.
func Dashboard(fs afero.Fs, dir string, opts DashboardOptions) (Result, error) {
	ok, err := afero.DirExists(fs, dir)
	if err != nil || !ok {
		return Result{}, common.NewUserError(
			fmt.Sprintf("Pasta 'dashboard' não encontrada em: %s", dir),
			common.ErrSourceNotFound,
		)
	}

	values := make(map[KPI]decimal.Decimal, len(KPIs()))
	for _, kpi := range KPIs() {
		values[kpi] = kpiValue(fs, dir, kpi)
		if opts.OnLoad != nil {
			opts.OnLoad(kpi)
		}
	}

	forecast := aggregate.Forecast(values[KPIReceived], values[KPIPaid], values[KPIPending])

	return Result{
		Page:     PageDashboard,
		Filtered: model.Dataset{Source: dir},
		Metrics: []Metric{
			{Label: KPICurrent.Label, Value: values[KPICurrent]},
			{Label: KPIPaid.Label, Value: values[KPIPaid]},
			{Label: KPIToPay.Label, Value: values[KPIToPay]},
			{Label: KPIReceived.Label, Value: values[KPIReceived]},
			{Label: KPIToReceive.Label, Value: values[KPIToReceive]},
			{Label: MetricProjected, Value: forecast},
		},
	}, nil
}

func kpiValue(fs afero.Fs, dir string, kpi KPI) decimal.Decimal {
	path, err := source.Exact(fs, dir, kpi.File+source.ExtXLSX)
	if err != nil {
		slog.Warn("KPI file not found, using zero", "kpi", kpi.File, "dir", dir)
		return decimal.Zero
	}

	ds, err := source.Load(fs, path)
	if err != nil {
		slog.Error("Failed to read KPI file, using zero", "kpi", kpi.File, "error", err)
		return decimal.Zero
	}

	col, ok := schema.ResolveExact(ds.Columns, "valor")
	if !ok || ds.Len() == 0 {
		return decimal.Zero
	}
	return aggregate.SumColumn(ds, col)
}
