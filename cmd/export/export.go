// Package export handles CSV/JSON export of obligations
package export

import (
	"fmt"

	"github.com/spf13/cobra"

	"duebook/cmd/common"
	"duebook/cmd/root"
)

var (
	output string
	format string
)

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export obligations to CSV or JSON",
	Long:  `Export every stored obligation to a CSV file, or print them as JSON.`,
	Run:   exportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&output, "output", "o", "obligations.csv", "Output CSV file")
	Cmd.Flags().StringVarP(&format, "format", "f", "", "Export format: csv or json (default from config)")
}

func exportFunc(cmd *cobra.Command, args []string) {
	rt, err := common.NewRuntime(cmd)
	if err != nil {
		root.Log.Errorf("Error initializing: %v", err)
		return
	}

	obligations, err := rt.Store.LoadAll()
	if err != nil {
		root.Log.Errorf("Error loading obligations: %v", err)
		return
	}

	f := format
	if f == "" {
		f = rt.Config.Export.Format
	}

	switch f {
	case "json":
		data, err := rt.Reports.ObligationsJSON(obligations)
		if err != nil {
			root.Log.Errorf("Error rendering JSON: %v", err)
			return
		}
		fmt.Println(string(data))
	case "csv":
		if err := rt.Reports.WriteObligationsCSV(obligations, output); err != nil {
			root.Log.Errorf("Error writing CSV: %v", err)
			return
		}
		root.Log.Infof("Exported %d obligations to %s", len(obligations), output)
	default:
		root.Log.Errorf("Unsupported export format '%s'", f)
	}
}
