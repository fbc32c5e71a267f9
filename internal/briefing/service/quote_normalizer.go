package service

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"market-briefing/internal/entity"
	"market-briefing/pkg/parser"
)

// columnRoles maps each semantic role to a column index, -1 when the table has no such column.
type columnRoles struct {
	symbol int
	name   int
	price  int
	change int
	volume int
}

func matchColumnRoles(headers []string) columnRoles {
	roles := columnRoles{symbol: -1, name: -1, price: -1, change: -1, volume: -1}
	for i, h := range headers {
		header := strings.ToLower(strings.Join(strings.Fields(h), " "))
		switch {
		case roles.symbol < 0 && strings.Contains(header, "symbol"):
			roles.symbol = i
		case roles.name < 0 && strings.Contains(header, "name"):
			roles.name = i
		case roles.change < 0 && (strings.Contains(header, "change %") || strings.Contains(header, "% change") || strings.Contains(header, "change%") || strings.Contains(header, "chg %")):
			roles.change = i
		case roles.price < 0 && strings.Contains(header, "price"):
			roles.price = i
		case roles.volume < 0 && strings.Contains(header, "volume"):
			roles.volume = i
		}
	}
	return roles
}

// NormalizeTable extracts the quotes of the first table in a market-movers page.
// Columns are located by case-insensitive substring match on their header; a table
// without Symbol or Name columns, or without rows, yields a *entity.DataSourceError.
func NormalizeTable(category entity.Category, html string) ([]entity.Quote, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &entity.DataSourceError{Category: category, Reason: entity.ErrEmptyResult, Detail: err.Error()}
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, &entity.DataSourceError{Category: category, Reason: entity.ErrEmptyResult, Detail: "no table found"}
	}

	var headers []string
	table.Find("thead th").Each(func(_ int, s *goquery.Selection) {
		headers = append(headers, cellText(s))
	})
	if len(headers) == 0 {
		table.Find("tr").First().Find("th,td").Each(func(_ int, s *goquery.Selection) {
			headers = append(headers, cellText(s))
		})
	}

	roles := matchColumnRoles(headers)
	if roles.symbol < 0 || roles.name < 0 {
		return nil, &entity.DataSourceError{
			Category: category,
			Reason:   entity.ErrMissingColumns,
			Detail:   fmt.Sprintf("headers %q", headers),
		}
	}

	rows := table.Find("tbody tr")
	if rows.Length() == 0 {
		rows = table.Find("tr").Slice(1, goquery.ToEnd)
	}

	seen := make(map[string]struct{})
	quotes := make([]entity.Quote, 0, rows.Length())
	rows.Each(func(_ int, row *goquery.Selection) {
		var cells []string
		row.Find("td").Each(func(_ int, s *goquery.Selection) {
			cells = append(cells, cellText(s))
		})

		symbol := firstField(cellAt(cells, roles.symbol))
		if symbol == "" {
			return
		}
		if _, dup := seen[symbol]; dup {
			return
		}
		seen[symbol] = struct{}{}

		q := entity.Quote{
			Symbol:   symbol,
			Name:     cellAt(cells, roles.name),
			Category: category,
		}

		priceText := cellAt(cells, roles.price)
		price, embeddedPct, hasEmbedded := parser.ParsePriceString(priceText)
		q.Price = firstField(priceText)
		q.PriceValue = price
		if roles.change >= 0 {
			q.ChangePct = parser.ParsePercent(cellAt(cells, roles.change))
		} else if hasEmbedded {
			q.ChangePct = embeddedPct
		}

		if roles.volume >= 0 {
			q.Volume = cellAt(cells, roles.volume)
			q.VolumeNum = parser.ParseVolume(q.Volume)
			q.HasVolume = q.Volume != ""
		}

		quotes = append(quotes, q)
	})

	if len(quotes) == 0 {
		return nil, &entity.DataSourceError{Category: category, Reason: entity.ErrEmptyResult}
	}

	return quotes, nil
}

func cellText(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}

func cellAt(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return cells[i]
}

func firstField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
