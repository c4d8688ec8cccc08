package paste

import (
	"fmt"
	"io"
	"os"

	"github.com/ValentinKolb/dPaste/cmd/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	putCmd = &cobra.Command{
		Use:   "put [text|-]",
		Short: "Stores a document and prints its key",
		Long:  "Stores a document and prints its key. The content is taken from the argument, from --file, or from stdin if the argument is '-' or missing.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readContent(cmd.InOrStdin(), args, viper.GetString("file"))
			if err != nil {
				return err
			}
			key, err := pasteClient.Put(content, viper.GetInt("key-length"))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}
	getCmd = &cobra.Command{
		Use:   "get [key]",
		Short: "Reads a document through the JSON api",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := pasteClient.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "key=%s, size=%d\n%s\n", args[0], len(data), data)
			return nil
		},
	}
	rawCmd = &cobra.Command{
		Use:   "raw [key]",
		Short: "Writes the unmodified document to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := pasteClient.GetRaw(args[0])
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	healthCmd = &cobra.Command{
		Use:   "health",
		Short: "Prints the health report of the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			health, err := pasteClient.Health()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "status=%s, storage=%s, documents=%d\n", health.Status, health.Store.Type, health.Store.Documents)
			return nil
		},
	}
)

func init() {
	key := "key-length"
	putCmd.Flags().Int(key, 0, util.WrapString("Number of generated key characters (0 = server default)"))
	key = "file"
	putCmd.Flags().StringP(key, "f", "", util.WrapString("Read the document from this file"))
}

// readContent returns the document given to put
func readContent(stdin io.Reader, args []string, file string) ([]byte, error) {
	switch {
	case file != "":
		return os.ReadFile(file)
	case len(args) == 1 && args[0] != "-":
		return []byte(args[0]), nil
	default:
		return io.ReadAll(stdin)
	}
}
