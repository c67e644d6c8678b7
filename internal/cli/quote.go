package cli

import (
	"github.com/spf13/cobra"

	"stockbot/internal/app"
)

var (
	quoteSymbol   string
	quoteCrypto   bool
	quoteInterval string
	quoteJSONPath string
	quotePNGPath  string
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Fetch a quote directly and print or export its graph",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.QuoteOptions{
			Symbol:   quoteSymbol,
			Crypto:   quoteCrypto,
			Interval: quoteInterval,
			JSONPath: quoteJSONPath,
			PNGPath:  quotePNGPath,
		}

		return getApp().Quote(cmd.Context(), opts)
	},
}

func init() {
	quoteCmd.Flags().StringVarP(&quoteSymbol, "symbol", "s", "", "Stock ticker symbol to quote")
	quoteCmd.Flags().BoolVar(&quoteCrypto, "crypto", false, "Quote the configured digital currency instead of a stock")
	quoteCmd.Flags().StringVarP(&quoteInterval, "interval", "i", "", "Interval phrase, e.g. 14days or 6months")
	quoteCmd.Flags().StringVarP(&quoteJSONPath, "output", "o", "", "Path to write the graph structure as JSON")
	quoteCmd.Flags().StringVar(&quotePNGPath, "png", "", "Path to render the graph as a PNG chart")
}
