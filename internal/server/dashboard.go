package server

import (
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"github.com/bobmcallan/stockcompare/internal/currency"
	"github.com/bobmcallan/stockcompare/internal/format"
	"github.com/bobmcallan/stockcompare/internal/models"
)

// dashboardView is everything the template needs. All numbers are
// pre-formatted strings so the template stays free of logic.
type dashboardView struct {
	Ticker1    string
	Ticker2    string
	From       string
	To         string
	Currency   string
	Currencies []string

	Error  string
	Report *reportView
}

type reportView struct {
	ChartURL     template.URL
	Panel1       panelView
	Panel2       panelView
	Fundamentals []fundamentalRow
	Verdicts     []models.Verdict
	Summary      string
}

// panelView is one ticker's metric column.
type panelView struct {
	Ticker       string
	Name         string
	Sector       string
	AveragePrice string
	TotalReturn  string
	Volatility   string
	Projected    string
}

// fundamentalRow is one line of the side-by-side fundamentals table.
type fundamentalRow struct {
	Label  string
	Value1 string
	Value2 string
}

// handleDashboard renders the single-page comparison UI. The comparison
// always runs — with defaults on first load, with the submitted form
// values afterwards. On failure only the error message is shown.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		// Browser-facing surface: plain 404, not a JSON error body.
		http.NotFound(w, r)
		return
	}
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}

	req, err := s.parseCompareRequest(r)
	view := dashboardView{
		Ticker1:    req.Ticker1,
		Ticker2:    req.Ticker2,
		From:       s.config.Compare.DefaultFrom,
		To:         s.config.Compare.DefaultTo,
		Currency:   req.Currency,
		Currencies: currency.Supported(),
	}
	// A failed date parse leaves the request date zero; keep the form on
	// the configured defaults in that case.
	if !req.From.IsZero() {
		view.From = req.From.Format("2006-01-02")
	}
	if !req.To.IsZero() {
		view.To = req.To.Format("2006-01-02")
	}

	if err != nil {
		view.Error = err.Error()
		s.renderDashboard(w, view)
		return
	}

	report, err := s.compare.Compare(r.Context(), req)
	if err != nil {
		view.Error = compareErrorMessage(err)
		s.renderDashboard(w, view)
		return
	}

	view.Report = buildReportView(report)
	s.renderDashboard(w, view)
}

func (s *Server) renderDashboard(w http.ResponseWriter, view dashboardView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(w, view); err != nil {
		s.logger.Error().Err(err).Msg("Dashboard render failed")
	}
}

func buildReportView(report *models.ComparisonReport) *reportView {
	q := url.Values{}
	q.Set("ticker1", report.Ticker1.Ticker)
	q.Set("ticker2", report.Ticker2.Ticker)
	q.Set("from", report.From.Format("2006-01-02"))
	q.Set("to", report.To.Format("2006-01-02"))
	q.Set("currency", report.Currency)

	return &reportView{
		ChartURL:     template.URL("/api/compare/chart?" + q.Encode()),
		Panel1:       buildPanelView(report.Ticker1, report.Currency),
		Panel2:       buildPanelView(report.Ticker2, report.Currency),
		Fundamentals: buildFundamentalRows(report),
		Verdicts:     report.Verdicts,
		Summary:      report.Summary,
	}
}

func buildPanelView(t models.TickerReport, code string) panelView {
	// %.2f is the display rounding; metric values stay unrounded upstream.
	return panelView{
		Ticker:       t.Ticker,
		Name:         t.Profile.DisplayName(),
		Sector:       t.Profile.Sector,
		AveragePrice: fmt.Sprintf("%.2f %s", t.Metrics.AveragePrice, code),
		TotalReturn:  fmt.Sprintf("%.2f%%", t.Metrics.TotalReturnPct),
		Volatility:   fmt.Sprintf("%.2f%%", t.Metrics.VolatilityPct),
		Projected:    fmt.Sprintf("%.2f %s", t.ProjectedPrice, code),
	}
}

func buildFundamentalRows(report *models.ComparisonReport) []fundamentalRow {
	p1, p2 := report.Ticker1.Profile, report.Ticker2.Profile
	code := report.Currency
	money := func(v float64) string {
		return format.Large(v) + " " + code
	}
	return []fundamentalRow{
		{Label: "Sector", Value1: orNA(p1.Sector), Value2: orNA(p2.Sector)},
		{Label: "Market Cap", Value1: money(p1.MarketCap), Value2: money(p2.MarketCap)},
		{Label: "P/E Ratio", Value1: format.LargeAny(p1.PERatio), Value2: format.LargeAny(p2.PERatio)},
		{Label: "Gross Profit", Value1: money(p1.GrossProfit), Value2: money(p2.GrossProfit)},
		{Label: "Total Revenue", Value1: money(p1.TotalRevenue), Value2: money(p2.TotalRevenue)},
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

var dashboardTmpl = template.Must(template.New("dashboard").Parse(dashboardHTML))

const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Stock Comparison Dashboard</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            background: #0E1117;
            color: #FAFAFA;
            min-height: 100vh;
            padding: 30px 20px;
        }
        .container { max-width: 960px; margin: 0 auto; }
        h1 { font-size: 26px; margin-bottom: 6px; }
        .subtitle { color: #9aa0a6; margin-bottom: 24px; font-size: 14px; }
        h2 { font-size: 18px; margin: 28px 0 12px; color: #00BFFF; }
        form.controls {
            display: flex;
            flex-wrap: wrap;
            gap: 12px;
            align-items: flex-end;
            background: #161B22;
            border: 1px solid #30363D;
            border-radius: 8px;
            padding: 16px;
        }
        .field { display: flex; flex-direction: column; gap: 4px; }
        .field label { font-size: 12px; color: #9aa0a6; }
        .field input, .field select {
            background: #0E1117;
            border: 1px solid #30363D;
            border-radius: 6px;
            color: #FAFAFA;
            padding: 8px 10px;
            font-size: 14px;
        }
        button[type=submit] {
            background: #00BFFF;
            color: #0E1117;
            border: none;
            border-radius: 6px;
            padding: 9px 22px;
            font-size: 14px;
            font-weight: 600;
            cursor: pointer;
        }
        button[type=submit]:hover { background: #33ccff; }
        .error {
            background: #3d1d1d;
            border: 1px solid #FF4B4B;
            border-radius: 8px;
            padding: 14px 16px;
            margin-top: 20px;
            color: #ffb3b3;
        }
        .chart { margin-top: 20px; text-align: center; }
        .chart img { max-width: 100%; border-radius: 8px; border: 1px solid #30363D; }
        .columns { display: flex; gap: 16px; flex-wrap: wrap; }
        .panel {
            flex: 1;
            min-width: 280px;
            background: #161B22;
            border: 1px solid #30363D;
            border-radius: 8px;
            padding: 16px;
        }
        .panel h3 { font-size: 16px; margin-bottom: 4px; }
        .panel .sector { color: #9aa0a6; font-size: 13px; margin-bottom: 12px; }
        .metric { display: flex; justify-content: space-between; padding: 6px 0; border-bottom: 1px solid #21262D; font-size: 14px; }
        .metric:last-child { border-bottom: none; }
        .metric .value { font-weight: 600; }
        table.fundamentals {
            width: 100%;
            border-collapse: collapse;
            background: #161B22;
            border: 1px solid #30363D;
            border-radius: 8px;
            overflow: hidden;
            font-size: 14px;
        }
        table.fundamentals th, table.fundamentals td {
            padding: 10px 14px;
            text-align: left;
            border-bottom: 1px solid #21262D;
        }
        table.fundamentals th { color: #9aa0a6; font-weight: 600; }
        table.fundamentals tr:last-child td { border-bottom: none; }
        .verdict {
            background: #11261a;
            border: 1px solid #2ea043;
            border-radius: 8px;
            padding: 10px 14px;
            margin-bottom: 8px;
            font-size: 14px;
        }
        .verdict .winner { color: #3fb950; font-weight: 600; }
        .summary {
            background: #161B22;
            border: 1px solid #30363D;
            border-radius: 8px;
            padding: 16px;
            line-height: 1.6;
            font-size: 14px;
        }
        .footer { margin-top: 30px; color: #6e7681; font-size: 12px; text-align: center; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Stock Comparison Dashboard</h1>
        <div class="subtitle">Head-to-head price performance, fundamentals and a 7-day projection</div>

        <form class="controls" method="GET" action="/">
            <div class="field">
                <label for="ticker1">First ticker</label>
                <input type="text" id="ticker1" name="ticker1" value="{{.Ticker1}}">
            </div>
            <div class="field">
                <label for="ticker2">Second ticker</label>
                <input type="text" id="ticker2" name="ticker2" value="{{.Ticker2}}">
            </div>
            <div class="field">
                <label for="from">From</label>
                <input type="date" id="from" name="from" value="{{.From}}">
            </div>
            <div class="field">
                <label for="to">To</label>
                <input type="date" id="to" name="to" value="{{.To}}">
            </div>
            <div class="field">
                <label for="currency">Currency</label>
                <select id="currency" name="currency">
                    {{range .Currencies}}
                    <option value="{{.}}" {{if eq . $.Currency}}selected{{end}}>{{.}}</option>
                    {{end}}
                </select>
            </div>
            <button type="submit">Compare</button>
        </form>

        {{if .Error}}
        <div class="error">{{.Error}}</div>
        {{end}}

        {{with .Report}}
        <div class="chart">
            <img src="{{.ChartURL}}" alt="Price comparison chart">
        </div>

        <h2>Key Metrics</h2>
        <div class="columns">
            <div class="panel">
                <h3>{{.Panel1.Name}} ({{.Panel1.Ticker}})</h3>
                <div class="sector">{{.Panel1.Sector}}</div>
                <div class="metric"><span>Average Price</span><span class="value">{{.Panel1.AveragePrice}}</span></div>
                <div class="metric"><span>Total Return</span><span class="value">{{.Panel1.TotalReturn}}</span></div>
                <div class="metric"><span>Volatility</span><span class="value">{{.Panel1.Volatility}}</span></div>
                <div class="metric"><span>Projected Price (7d)</span><span class="value">{{.Panel1.Projected}}</span></div>
            </div>
            <div class="panel">
                <h3>{{.Panel2.Name}} ({{.Panel2.Ticker}})</h3>
                <div class="sector">{{.Panel2.Sector}}</div>
                <div class="metric"><span>Average Price</span><span class="value">{{.Panel2.AveragePrice}}</span></div>
                <div class="metric"><span>Total Return</span><span class="value">{{.Panel2.TotalReturn}}</span></div>
                <div class="metric"><span>Volatility</span><span class="value">{{.Panel2.Volatility}}</span></div>
                <div class="metric"><span>Projected Price (7d)</span><span class="value">{{.Panel2.Projected}}</span></div>
            </div>
        </div>

        <h2>Fundamentals</h2>
        <table class="fundamentals">
            <tr><th></th><th>{{.Panel1.Ticker}}</th><th>{{.Panel2.Ticker}}</th></tr>
            {{range .Fundamentals}}
            <tr><td>{{.Label}}</td><td>{{.Value1}}</td><td>{{.Value2}}</td></tr>
            {{end}}
        </table>

        <h2>Verdicts</h2>
        {{range .Verdicts}}
        <div class="verdict">{{.Metric}}: <span class="winner">{{.Winner}}</span> leads</div>
        {{end}}

        <h2>Summary</h2>
        <div class="summary">{{.Summary}}</div>
        {{end}}

        <div class="footer">StockCompare &mdash; data via EODHD</div>
    </div>
</body>
</html>
`
