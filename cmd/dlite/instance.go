package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sintef/dlite-go/internal/datamodel"
	"github.com/sintef/dlite-go/internal/entity"
	"github.com/sintef/dlite-go/internal/instance"
	"github.com/sintef/dlite-go/internal/orchestrator"
	"github.com/sintef/dlite-go/internal/storage"
	"github.com/sintef/dlite-go/internal/storage/jsonbackend"
	"github.com/sintef/dlite-go/pkg/logger"
)

var (
	storageURI  string
	storageName string
	metaPath    string
	dataPath    string
	instanceID  string
)

var instanceCmd = &cobra.Command{
	Use:   "instance",
	Short: "Load and save instances against a storage backend",
}

var instanceLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load an instance and print its properties as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		meta, err := loadEntityFile(metaPath)
		if err != nil {
			return err
		}

		driver, st, err := openStorage(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		inst, err := orchestrator.Load(cmd.Context(), driver, st, meta, instanceID)
		if err != nil {
			return fmt.Errorf("loading instance: %w", err)
		}

		out, err := instanceToJSON(inst)
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

var instanceSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Create an instance from a JSON document and save it",
	RunE: func(cmd *cobra.Command, args []string) error {
		meta, err := loadEntityFile(metaPath)
		if err != nil {
			return err
		}
		if dataPath == "" {
			return fmt.Errorf("--data is required")
		}

		raw, err := os.ReadFile(dataPath)
		if err != nil {
			return fmt.Errorf("reading instance data: %w", err)
		}

		var doc struct {
			UUID       string         `json:"uuid"`
			Dimensions map[string]int `json:"dimensions"`
			Properties map[string]any `json:"properties"`
		}
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("parsing instance data: %w", err)
		}

		dims := make([]uint64, len(meta.Dimensions))
		for i, d := range meta.Dimensions {
			dims[i] = uint64(doc.Dimensions[d.Name])
		}

		inst, err := instance.Create(meta, dims, doc.UUID)
		if err != nil {
			return fmt.Errorf("creating instance: %w", err)
		}
		for name, value := range doc.Properties {
			if err := inst.SetPropertyByName(name, value); err != nil {
				return fmt.Errorf("setting property %q: %w", name, err)
			}
		}

		driver, st, err := openStorage(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		if err := orchestrator.Save(cmd.Context(), driver, st, inst); err != nil {
			return fmt.Errorf("saving instance: %w", err)
		}
		appLogger.Info("instance saved", logger.String("uuid", inst.UUID), logger.String("meta", meta.URI))
		fmt.Println(inst.UUID)
		return nil
	},
}

// loadEntityFile reads and parses the entity file naming the schema an
// instance conforms to.
func loadEntityFile(path string) (*entity.Entity, error) {
	if path == "" {
		return nil, fmt.Errorf("--meta is required")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading entity file: %w", err)
	}
	e, err := jsonbackend.ParseEntityFile(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing entity file: %w", err)
	}
	return e, nil
}

// openStorage resolves --backend to a registered driver and opens --storage
// through it.
func openStorage(ctx context.Context) (datamodel.Driver, datamodel.Storage, error) {
	if storageURI == "" {
		return nil, nil, fmt.Errorf("--storage is required")
	}
	driver, err := storage.Default().Get(storageName)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving backend %q: %w", storageName, err)
	}
	st, err := driver.Open(ctx, storageURI, datamodel.Options{})
	if err != nil {
		return nil, nil, fmt.Errorf("opening storage %q: %w", storageURI, err)
	}
	return driver, st, nil
}

func instanceToJSON(inst *instance.Instance) ([]byte, error) {
	props := map[string]any{}
	for i, p := range inst.Meta.Properties {
		v, err := inst.GetPropertyByIndex(i)
		if err != nil {
			return nil, fmt.Errorf("reading property %q: %w", p.Name, err)
		}
		props[p.Name] = v
	}
	out := map[string]any{"uuid": inst.UUID, "meta": inst.Meta.URI, "properties": props}
	return json.MarshalIndent(out, "", "  ")
}

func init() {
	instanceCmd.PersistentFlags().StringVar(&storageURI, "storage", "", "Storage directory or connection uri")
	instanceCmd.PersistentFlags().StringVar(&storageName, "backend", jsonbackend.Name, "Registered storage backend name")
	instanceCmd.PersistentFlags().StringVar(&metaPath, "meta", "", "Path to the entity file this instance conforms to")
	instanceLoadCmd.Flags().StringVar(&instanceID, "uuid", "", "Instance uuid to load")
	instanceSaveCmd.Flags().StringVar(&dataPath, "data", "", "Path to a JSON document with dimensions and properties")
	instanceCmd.AddCommand(instanceLoadCmd, instanceSaveCmd)
}
