package main

import (
	"fmt"

	"github.com/spboyer/journeys/internal/publish"
	"github.com/spf13/cobra"
)

// newBlobClient is replaced in tests.
var newBlobClient = func(accountURL string) (publish.BlobClient, error) {
	client, err := publish.NewClient(accountURL, nil)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func newPublishCommand() *cobra.Command {
	var (
		accountURL string
		container  string
		prefix     string
	)

	cmd := &cobra.Command{
		Use:   "publish <artifacts-root>",
		Short: "Upload a batch's artifacts to Azure Blob Storage",
		Long: `Upload every file under the artifacts root to a blob container, keeping
the relative layout under an optional prefix. Credentials come from the
Azure default credential chain (environment, managed identity, Azure CLI).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if accountURL == "" {
				return fmt.Errorf("--account-url is required")
			}
			if container == "" {
				return fmt.Errorf("--container is required")
			}

			client, err := newBlobClient(accountURL)
			if err != nil {
				return fmt.Errorf("creating blob client: %w", err)
			}

			uploaded, err := publish.NewUploader(client, container).UploadDir(cmd.Context(), args[0], prefix)
			out := cmd.OutOrStdout()
			for _, name := range uploaded {
				fmt.Fprintf(out, "uploaded %s\n", name)
			}
			if err != nil {
				return err
			}
			printer.Fprintf(out, "Published %d file(s) to %s/%s\n", len(uploaded), accountURL, container)
			return nil
		},
	}

	cmd.Flags().StringVar(&accountURL, "account-url", "", "Storage account URL, e.g. https://myaccount.blob.core.windows.net")
	cmd.Flags().StringVar(&container, "container", "", "Blob container name")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Blob name prefix")

	return cmd
}
