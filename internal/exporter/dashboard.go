package exporter

import (
	"encoding/json"
	"fmt"
	"os"
)

// Dashboard describes a BI dashboard layout as a serializable document.
type Dashboard struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Elements    []Element `json:"elements"`
}

// Element is one tile on a dashboard.
type Element struct {
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Model   string   `json:"model"`
	Explore string   `json:"explore"`
	Fields  []string `json:"fields"`
	Sorts   []string `json:"sorts,omitempty"`
	Limit   int      `json:"limit,omitempty"`
}

// WriteDashboards writes the dashboard configuration documents used to
// provision the BI layer. Returns the written file paths.
func (e *Exporter) WriteDashboards() ([]string, error) {
	dashboards := map[string]Dashboard{
		"dashboard_stock_performance.json": {
			Title:       "Stock Performance Overview",
			Description: "Daily close prices with moving-average overlays per symbol",
			Elements: []Element{
				{
					Name:    "price_trend",
					Type:    "looker_line",
					Model:   "stock_analytics",
					Explore: "stock_prices",
					Fields:  []string{"stock_prices.date", "stock_prices.symbol", "stock_prices.close", "stock_prices.sma_short", "stock_prices.sma_long"},
					Sorts:   []string{"stock_prices.date"},
				},
				{
					Name:    "volume_by_symbol",
					Type:    "looker_column",
					Model:   "stock_analytics",
					Explore: "stock_prices",
					Fields:  []string{"stock_prices.symbol", "stock_prices.total_volume"},
				},
			},
		},
		"dashboard_market_analysis.json": {
			Title:       "Market Analysis",
			Description: "Momentum and signal distribution across tracked symbols",
			Elements: []Element{
				{
					Name:    "rsi_heatmap",
					Type:    "looker_grid",
					Model:   "stock_analytics",
					Explore: "stock_prices",
					Fields:  []string{"stock_prices.symbol", "stock_prices.date", "stock_prices.rsi"},
					Sorts:   []string{"stock_prices.date desc"},
					Limit:   100,
				},
				{
					Name:    "latest_close",
					Type:    "single_value",
					Model:   "stock_analytics",
					Explore: "stock_prices",
					Fields:  []string{"stock_prices.latest_close"},
				},
			},
		},
	}

	var paths []string
	for name, d := range dashboards {
		path, err := e.path(name)
		if err != nil {
			return nil, err
		}
		data, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal dashboard %s: %w", name, err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("write dashboard %s: %w", name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// WriteLookML writes the LookML view definition for the stock_prices table.
func (e *Exporter) WriteLookML() (string, error) {
	path, err := e.path("stock_prices.view.lkml")
	if err != nil {
		return "", err
	}

	view := fmt.Sprintf(`view: stock_prices {
  sql_table_name: %s.%s.stock_prices ;;

  dimension_group: date {
    type: time
    timeframes: [date, week, month, year]
    datatype: date
    sql: ${TABLE}.date ;;
  }

  dimension: symbol {
    type: string
    sql: ${TABLE}.symbol ;;
  }

  dimension: open {
    type: number
    sql: ${TABLE}.open ;;
  }

  dimension: high {
    type: number
    sql: ${TABLE}.high ;;
  }

  dimension: low {
    type: number
    sql: ${TABLE}.low ;;
  }

  dimension: close {
    type: number
    sql: ${TABLE}.close ;;
  }

  dimension: volume {
    type: number
    sql: ${TABLE}.volume ;;
  }

  dimension: sma_short {
    type: number
    sql: ${TABLE}.sma_short ;;
  }

  dimension: sma_long {
    type: number
    sql: ${TABLE}.sma_long ;;
  }

  dimension: rsi {
    type: number
    sql: ${TABLE}.rsi ;;
  }

  measure: total_volume {
    type: sum
    sql: ${volume} ;;
  }

  measure: latest_close {
    type: max
    sql: ${close} ;;
  }

  measure: average_rsi {
    type: average
    sql: ${rsi} ;;
  }
}
`, e.ProjectID, e.DatasetID)

	if err := os.WriteFile(path, []byte(view), 0644); err != nil {
		return "", fmt.Errorf("write lookml: %w", err)
	}
	return path, nil
}
