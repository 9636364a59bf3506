package cmd

import (
	"fmt"
	"strings"

	"github.com/lepinkainen/videocatalog/catalog"
	"github.com/lepinkainen/videocatalog/types"
	"github.com/lepinkainen/videocatalog/ui"
)

type ShowCmd struct {
	CSV        string `short:"c" name:"csv" required:"" help:"Catalogue CSV to read" type:"existingfile"`
	Collection string `help:"Only show records whose collection contains this text"`
	Cast       string `help:"Only show records whose cast contains this text"`
}

var showColumns = []string{"Name", "Collection", "Cast", "Duration", "Resolution", "Size", "Tags"}

func (cmd *ShowCmd) Run(appCtx *types.AppContext) error {
	records, err := catalog.Load(cmd.CSV, appCtx.Logger())
	if err != nil {
		return err
	}

	matches := filterRecords(records, cmd.Collection, cmd.Cast)
	if len(matches) == 0 {
		fmt.Println(ui.InfoStyle.Render(fmt.Sprintf("No records match in %s", cmd.CSV)))
		return nil
	}

	fmt.Println(renderCatalog(matches))
	fmt.Println(ui.InfoStyle.Render(fmt.Sprintf("%d of %d records", len(matches), len(records))))
	return nil
}

// filterRecords keeps records whose collection and cast contain the given
// text, ignoring case. Empty filters match everything.
func filterRecords(records []catalog.Record, collection, cast string) []catalog.Record {
	collection = strings.ToLower(strings.TrimSpace(collection))
	cast = strings.ToLower(strings.TrimSpace(cast))

	var out []catalog.Record
	for _, rec := range records {
		if collection != "" && !strings.Contains(strings.ToLower(rec.Collection), collection) {
			continue
		}
		if cast != "" && !strings.Contains(strings.ToLower(rec.Cast), cast) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func renderCatalog(records []catalog.Record) string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{rec.Name, rec.Collection, rec.Cast, rec.Duration, rec.Resolution, rec.Size, rec.Tags})
	}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft}
	return renderTable(showColumns, rows, aligns)
}
