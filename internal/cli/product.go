package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewProductCmd создаёт группу команд для управления товарами.
func NewProductCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Manage products",
	}

	cmd.AddCommand(
		newProductListCmd(clientFn, outputFn),
		newProductCreateCmd(clientFn, outputFn),
		newProductShowCmd(clientFn, outputFn),
	)

	return cmd
}

func newProductListCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			products, err := client.ListProducts(limit)
			if err != nil {
				return err
			}

			headers := []string{"ID", "NAME", "STATUS", "VISIBILITY", "FEATURED"}
			rows := make([][]string, len(products))
			for i, p := range products {
				rows[i] = productRow(&p)
			}

			out.Print(headers, rows, products)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of products")

	return cmd
}

func newProductCreateCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var name string
	var status string
	var visibility string
	var featured bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			if name == "" {
				return fmt.Errorf("--name is required")
			}

			product, err := client.CreateProduct(CreateProductRequest{
				Name:              name,
				Status:            status,
				CatalogVisibility: visibility,
				Featured:          featured,
			})
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Product created: %d", product.ID))
			out.Print(
				[]string{"ID", "NAME", "STATUS", "VISIBILITY", "FEATURED"},
				[][]string{productRow(product)},
				product,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Product name (required)")
	cmd.Flags().StringVar(&status, "status", "", "Initial status: draft, private or publish (default draft)")
	cmd.Flags().StringVar(&visibility, "visibility", "", "Catalog visibility: visible, catalog, search or hidden")
	cmd.Flags().BoolVar(&featured, "featured", false, "Mark product as featured")

	return cmd
}

func newProductShowCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show PRODUCT_ID",
		Short: "Show a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}

			product, err := client.GetProduct(id)
			if err != nil {
				return err
			}

			out.Print(
				[]string{"ID", "NAME", "STATUS", "VISIBILITY", "FEATURED"},
				[][]string{productRow(product)},
				product,
			)
			return nil
		},
	}
}

func productRow(p *ProductResponse) []string {
	return []string{
		strconv.FormatInt(p.ID, 10),
		p.Name,
		p.Status,
		p.CatalogVisibility,
		strconv.FormatBool(p.Featured),
	}
}
