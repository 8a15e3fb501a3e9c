package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Lelo88/monument-catalog/internal/admin"
	"github.com/Lelo88/monument-catalog/internal/products"
)

type opener func() (*session, error)

var rubles = message.NewPrinter(language.Russian)

// formatPrice agrupa miles al estilo ruso.
func formatPrice(price float64) string {
	return rubles.Sprintf("%.0f ₽", price)
}

func newListCmd(env *environment, open opener) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista los productos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if category != "" && !products.Category(category).Valid() {
				return fmt.Errorf("unknown category %q", category)
			}

			s, err := open()
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.controller.Mount(cmd.Context()); err != nil {
				return err
			}

			writer := tabwriter.NewWriter(env.stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(writer, "ID\tNAME\tCATEGORY\tPRICE\tIMAGE")
			for _, record := range s.controller.State().Records {
				if category != "" && string(record.Category) != category {
					continue
				}
				image := "-"
				if record.HasImage() {
					image = record.ImageURL
				}
				fmt.Fprintf(writer, "%d\t%s\t%s\t%s\t%s\n",
					record.ID, record.Name, record.Category, formatPrice(record.Price), image)
			}
			return writer.Flush()
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Filtra por categoría (standard, premium, exclusive)")
	return cmd
}

// formFlags enlaza un flag por campo editable.
type formFlags struct {
	form  admin.Form
	image string
}

func (flags *formFlags) bind(cmd *cobra.Command) {
	set := cmd.Flags()
	set.StringVar(&flags.form.Name, "name", "", "Nombre")
	set.StringVar(&flags.form.Category, "category", "", "Categoría (standard, premium, exclusive)")
	set.StringVar(&flags.form.Shape, "shape", "", "Forma")
	set.StringVar(&flags.form.Size, "size", "", "Tamaño")
	set.StringVar(&flags.form.Dimensions, "dimensions", "", "Medidas")
	set.StringVar(&flags.form.Material, "material", "", "Material")
	set.StringVar(&flags.form.Price, "price", "", "Precio")
	set.StringVar(&flags.form.Description, "description", "", "Descripción")
	set.StringVar(&flags.form.ImageURL, "image-url", "", "URL de la imagen")
	set.StringVar(&flags.image, "image", "", "Archivo de imagen a subir antes de guardar")
}

// overlay pisa en base sólo los campos que se pasaron por línea de comando.
func (flags *formFlags) overlay(cmd *cobra.Command, base admin.Form) admin.Form {
	changed := cmd.Flags().Changed
	pick := func(name string, value string, current *string) {
		if changed(name) {
			*current = value
		}
	}

	pick("name", flags.form.Name, &base.Name)
	pick("category", flags.form.Category, &base.Category)
	pick("shape", flags.form.Shape, &base.Shape)
	pick("size", flags.form.Size, &base.Size)
	pick("dimensions", flags.form.Dimensions, &base.Dimensions)
	pick("material", flags.form.Material, &base.Material)
	pick("price", flags.form.Price, &base.Price)
	pick("description", flags.form.Description, &base.Description)
	pick("image-url", flags.form.ImageURL, &base.ImageURL)
	return base
}

func (flags *formFlags) uploadImage(cmd *cobra.Command, s *session, form admin.Form) (admin.Form, error) {
	if flags.image == "" {
		return form, nil
	}

	file, err := os.Open(flags.image)
	if err != nil {
		return form, err
	}
	defer file.Close()

	url, err := s.client.UploadImage(cmd.Context(), filepath.Base(flags.image), file)
	if err != nil {
		return form, fmt.Errorf("upload image: %w", err)
	}
	form.ImageURL = url
	return form, nil
}

func newCreateCmd(open opener) *cobra.Command {
	flags := &formFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Crea un producto",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.controller.OpenCreate(); err != nil {
				return err
			}
			form, err := flags.uploadImage(cmd, s, flags.overlay(cmd, s.controller.State().Form))
			if err != nil {
				return err
			}
			if err := s.controller.SetForm(form); err != nil {
				return err
			}
			return s.controller.Submit(cmd.Context())
		},
	}

	flags.bind(cmd)
	return cmd
}

func newUpdateCmd(open opener) *cobra.Command {
	flags := &formFlags{}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Modifica un producto (reemplazo completo con los valores actuales como base)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			s, err := open()
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.controller.Mount(cmd.Context()); err != nil {
				return err
			}
			record, ok := findRecord(s.controller.State().Records, id)
			if !ok {
				return fmt.Errorf("product %d not found", id)
			}
			if err := s.controller.OpenEdit(record); err != nil {
				return err
			}

			form, err := flags.uploadImage(cmd, s, flags.overlay(cmd, s.controller.State().Form))
			if err != nil {
				return err
			}
			if err := s.controller.SetForm(form); err != nil {
				return err
			}
			return s.controller.Submit(cmd.Context())
		},
	}

	flags.bind(cmd)
	return cmd
}

func newDeleteCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Borra un producto (pide confirmación salvo --yes)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			s, err := open()
			if err != nil {
				return err
			}
			defer s.close()

			err = s.controller.Delete(cmd.Context(), id)
			if errors.Is(err, admin.ErrDeclined) {
				return nil
			}
			return err
		},
	}
}

func newImportCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Importa productos desde una planilla Excel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			s, err := open()
			if err != nil {
				return err
			}
			defer s.close()

			return s.controller.BulkImport(cmd.Context(), file)
		},
	}
}

func newTemplateCmd(env *environment) *cobra.Command {
	var (
		output string
		xlsx   bool
	)

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Genera la plantilla de importación",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				content []byte
				err     error
			)
			name := admin.TemplateFilename
			if xlsx {
				content, err = admin.TemplateWorkbook()
				name = admin.TemplateWorkbookFilename
			} else {
				content, err = admin.TemplateCSV()
			}
			if err != nil {
				return err
			}

			if output == "-" {
				_, err = env.stdout.Write(content)
				return err
			}
			if output == "" {
				output = name
			}
			if err := os.WriteFile(output, content, 0o644); err != nil {
				return err
			}
			fmt.Fprintln(env.stdout, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", `Archivo destino ("-" para stdout)`)
	cmd.Flags().BoolVar(&xlsx, "xlsx", false, "Generar .xlsx en lugar de .csv")
	return cmd
}

func newUploadCmd(env *environment, open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <image>",
		Short: "Sube una imagen y muestra su URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			s, err := open()
			if err != nil {
				return err
			}
			defer s.close()

			url, err := s.client.UploadImage(cmd.Context(), filepath.Base(args[0]), file)
			if err != nil {
				return err
			}
			fmt.Fprintln(env.stdout, url)
			return nil
		},
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func findRecord(records []products.Product, id int64) (products.Product, bool) {
	for _, record := range records {
		if record.ID == id {
			return record, true
		}
	}
	return products.Product{}, false
}
