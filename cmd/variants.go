package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yeisme/greeter/pkg/greeting"
	"github.com/yeisme/greeter/pkg/style"
)

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List built-in greetings",
	Long:  `greeter variants lists the built-in greetings that server.variant and serve --variant accept. The active one is marked with *.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		// 空变体等同于默认变体
		active := strings.ToLower(strings.TrimSpace(greeterCtx.Config.Server.Variant))
		if active == "" {
			active = greeting.DefaultVariant
		}
		out := cmd.OutOrStdout()
		for _, name := range greeting.Names() {
			body, err := greeting.Lookup(name)
			if err != nil {
				return err
			}
			// 先填充再着色，ANSI 转义序列不计入宽度
			padded := fmt.Sprintf("%-8s", name)
			if name == active && greeterCtx.Config.Server.Greeting == "" {
				fmt.Fprintf(out, "* %s %s\n", style.Highlight(padded), body)
				continue
			}
			fmt.Fprintf(out, "  %s %s\n", padded, body)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(variantsCmd)
}
