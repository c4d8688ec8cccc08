package paste

import (
	"github.com/ValentinKolb/dPaste/cmd/util"
	"github.com/ValentinKolb/dPaste/rpc/client"
	"github.com/spf13/cobra"
)

var (
	pasteClient *client.PasteClient

	// DocumentCommands represents the document command group
	DocumentCommands = &cobra.Command{
		Use:               "doc",
		Short:             "Store and read documents on a dPaste server",
		PersistentPreRunE: setupClient,
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if pasteClient == nil {
				return nil
			}
			return pasteClient.Close()
		},
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add client flags to the document commands
	util.SetupClientFlags(DocumentCommands)

	// Add subcommands
	DocumentCommands.AddCommand(putCmd)
	DocumentCommands.AddCommand(getCmd)
	DocumentCommands.AddCommand(rawCmd)
	DocumentCommands.AddCommand(healthCmd)
	DocumentCommands.AddCommand(perfTestCmd)
}

// setupClient initializes the paste client
func setupClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	var err error
	pasteClient, err = util.NewClient()
	return err
}
