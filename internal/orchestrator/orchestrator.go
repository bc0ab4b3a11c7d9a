// Package orchestrator ties entity, instance and datamodel together into
// the load/save pipeline described in spec.md §4.I: open a backend handle,
// validate it against the expected entity, and copy dimension sizes and
// property contents across in either direction, guaranteeing the handle is
// closed on every exit path.
package orchestrator

import (
	"context"

	"github.com/sintef/dlite-go/internal/datamodel"
	"github.com/sintef/dlite-go/internal/entity"
	"github.com/sintef/dlite-go/internal/errors"
	"github.com/sintef/dlite-go/internal/instance"
	"github.com/sintef/dlite-go/internal/uuid"
)

// Load materialises an instance of meta from storage, identified by id.
func Load(ctx context.Context, driver datamodel.Driver, st datamodel.Storage, meta *entity.Entity, id string) (*instance.Instance, error) {
	instUUID, _ := uuid.Derive(id)

	h, err := driver.DataModel(ctx, st, instUUID)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrIO, "orchestrator.Load: opening data model for %s", instUUID)
	}
	defer h.Close()

	storedURI, err := h.GetMetadata()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrIO, "orchestrator.Load: reading metadata uri")
	}
	if storedURI != meta.URI {
		return nil, errors.WrapWithCode(errors.New(storedURI), errors.ErrTypeMismatch,
			"orchestrator.Load: stored entity %s does not match expected %s", storedURI, meta.URI)
	}

	dims := make([]uint64, len(meta.Dimensions))
	for i, d := range meta.Dimensions {
		size, err := h.GetDimensionSize(d.Name)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrIO, "orchestrator.Load: reading dimension %s", d.Name)
		}
		dims[i] = uint64(size)
	}

	inst, err := instance.Create(meta, dims, id)
	if err != nil {
		return nil, err
	}

	for i := range meta.Properties {
		p := &meta.Properties[i]
		propDims := propertyDimSizes(p, dims)

		buf, err := h.GetProperty(p.Name, p.Type, p.ElementSize, propDims)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrIO, "orchestrator.Load: reading property %s", p.Name)
		}

		value, err := decodeBuffer(p, buf)
		if err != nil {
			return nil, err
		}
		if err := inst.SetPropertyByIndex(i, value); err != nil {
			return nil, err
		}
	}

	return inst, nil
}

// Save writes inst's current state to storage through driver, the reverse
// direction of Load and in the same sequence: metadata, then each
// dimension, then each property. Any backend error aborts the save; the
// handle is closed on every exit path.
func Save(ctx context.Context, driver datamodel.Driver, st datamodel.Storage, inst *instance.Instance) error {
	h, err := driver.DataModel(ctx, st, inst.UUID)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrIO, "orchestrator.Save: opening data model for %s", inst.UUID)
	}
	defer h.Close()

	w, ok := datamodel.AsOptionalBackend(h)
	if !ok {
		return errors.WrapWithCode(&datamodel.ErrUnsupportedMethod{Backend: "handle", Method: "SetProperty"},
			errors.ErrUnsupportedOp, "orchestrator.Save: backend does not support writes")
	}

	if err := w.SetMetadata(inst.Meta.URI); err != nil {
		return errors.WrapWithCode(err, errors.ErrIO, "orchestrator.Save: writing metadata uri")
	}

	for i, d := range inst.Meta.Dimensions {
		if err := w.SetDimensionSize(d.Name, int(inst.Dims[i])); err != nil {
			return errors.WrapWithCode(err, errors.ErrIO, "orchestrator.Save: writing dimension %s", d.Name)
		}
	}

	for i := range inst.Meta.Properties {
		p := &inst.Meta.Properties[i]
		value, err := inst.GetPropertyByIndex(i)
		if err != nil {
			return err
		}

		propDims := propertyDimSizes(p, inst.Dims)
		raw, err := encodeValue(p, value)
		if err != nil {
			return err
		}
		if err := w.SetProperty(p.Name, p.Type, p.ElementSize, propDims, raw); err != nil {
			return errors.WrapWithCode(err, errors.ErrIO, "orchestrator.Save: writing property %s", p.Name)
		}
	}

	return nil
}

func propertyDimSizes(p *entity.Property, dims []uint64) []int {
	out := make([]int, len(p.Dims))
	for k, di := range p.Dims {
		out[k] = int(dims[di])
	}
	return out
}
