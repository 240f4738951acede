package cmd

import (
	"fmt"
	"sort"
	"strings"

	json "github.com/goccy/go-json"

	"fonoteca/internal/application/commands"
	"fonoteca/internal/domain"
)

// pageJSON is the --json shape of a list or search page
type pageJSON struct {
	View       string         `json:"view"`
	Items      []domain.Asset `json:"items"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalItems int            `json:"total_items"`
	TotalPages int            `json:"total_pages"`
	Warning    string         `json:"warning,omitempty"`
}

func (c *cli) printJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) printPage(p *commands.Page) error {
	c.warn(p.Warning)

	ps := p.Pagination
	if c.jsonOutput {
		items := p.Items
		if items == nil {
			items = []domain.Asset{}
		}
		return c.printJSON(pageJSON{
			View:       p.View.String(),
			Items:      items,
			Page:       ps.CurrentPage,
			PageSize:   ps.ItemsPerPage,
			TotalItems: ps.TotalItems,
			TotalPages: ps.TotalPages,
			Warning:    p.Warning,
		})
	}

	if len(p.Items) == 0 {
		fmt.Fprintln(c.out, "No results found")
		return nil
	}
	for _, a := range p.Items {
		fmt.Fprintln(c.out, assetLine(a))
	}

	markers := make([]string, len(p.Window))
	for i, m := range p.Window {
		markers[i] = m.String()
	}
	fmt.Fprintf(c.out, "\n%s: %d assets, page %d/%d  %s\n",
		p.View, ps.TotalItems, ps.CurrentPage, max(1, ps.TotalPages), strings.Join(markers, " "))
	return nil
}

func (c *cli) printAsset(a domain.Asset) error {
	if c.jsonOutput {
		return c.printJSON(a)
	}
	fmt.Fprintf(c.out, "id:          %d\n", a.ID)
	fmt.Fprintf(c.out, "type:        %s\n", a.Type)
	fmt.Fprintf(c.out, "description: %s\n", a.Description)
	fmt.Fprintf(c.out, "tags:        %s\n", strings.Join(a.Tags, ", "))
	fmt.Fprintf(c.out, "duration:    %s (%ds)\n", domain.FormatDuration(a.Duration), a.Duration)
	fmt.Fprintf(c.out, "path:        %s\n", a.Path)
	return nil
}

func (c *cli) printStats(res *commands.StatsResult) error {
	if c.jsonOutput {
		return c.printJSON(struct {
			domain.Stats
			Types []string `json:"types"`
		}{res.Stats, res.Types})
	}

	if res.Stats.CollectionName != "" {
		fmt.Fprintf(c.out, "collection: %s\n", res.Stats.CollectionName)
	}
	fmt.Fprintf(c.out, "total: %d\n", res.Stats.TotalCount)

	types := make([]string, 0, len(res.Stats.TypeCounts))
	for t := range res.Stats.TypeCounts {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Fprintf(c.out, "  %-10s %d\n", t, res.Stats.TypeCounts[t])
	}
	return nil
}

// printMessage prints a mutation result, or the asset with --json
func (c *cli) printMessage(message, warning string, asset *domain.Asset) error {
	c.warn(warning)
	if c.jsonOutput && asset != nil {
		return c.printJSON(asset)
	}
	fmt.Fprintln(c.out, message)
	return nil
}

func assetLine(a domain.Asset) string {
	line := fmt.Sprintf("%4d  [%s] %7s  %s", a.ID, a.Type, domain.FormatDuration(a.Duration), a.Description)
	if len(a.Tags) > 0 {
		line += "  #" + strings.Join(a.Tags, " #")
	}
	return line
}
