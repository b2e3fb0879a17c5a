package cmd

import (
	"fmt"
	"log"
	"strings"

	"github.com/spigell/resume-agent/internal/analysis"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List the roles available for --role and their skill sets",
	Run: func(_ *cobra.Command, _ []string) {
		roles, err := analysis.RolesFromConfig(viper.Get("roles"))
		if err != nil {
			log.Fatalf("decoding roles configuration: %v", err)
		}

		for _, name := range analysis.RoleNames(roles) {
			fmt.Printf("%s: %s\n", name, strings.Join(roles[name], ", "))
		}
	},
}

func init() {
	rootCmd.AddCommand(rolesCmd)
}
