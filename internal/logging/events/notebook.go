package events

import "github.com/atomicstack/notebook-menubar/internal/logging"

type RegistryTracer struct{}

type ExportTracer struct{}

type DocumentTracer struct{}

type CheckpointTracer struct{}

type TrustTracer struct{}

type KernelTracer struct{}

var (
	Registry   = RegistryTracer{}
	Export     = ExportTracer{}
	Document   = DocumentTracer{}
	Checkpoint = CheckpointTracer{}
	Trust      = TrustTracer{}
	Kernel     = KernelTracer{}
)

func (RegistryTracer) Overwrite(id string) {
	logging.Trace("registry.overwrite", map[string]interface{}{"id": id})
}

func (RegistryTracer) Sealed(id string) {
	logging.Trace("registry.sealed", map[string]interface{}{"id": id})
}

func (RegistryTracer) Dispatch(id, arg string) {
	logging.Trace("registry.dispatch", map[string]interface{}{"id": id, "arg": arg})
}

func (RegistryTracer) Unbound(id string) {
	logging.Trace("registry.unbound", map[string]interface{}{"id": id})
}

func (RegistryTracer) Panic(id string, recovered interface{}) {
	logging.Trace("registry.panic", map[string]interface{}{"id": id, "panic": recovered})
}

func (ExportTracer) SaveFirst(path string) {
	logging.Trace("export.save", map[string]interface{}{"path": path})
}

func (ExportTracer) Open(url string) {
	logging.Trace("export.open", map[string]interface{}{"url": url})
}

func (ExportTracer) Abort(path string, err error) {
	logging.Trace("export.abort", map[string]interface{}{"path": path, "error": errString(err)})
}

func (DocumentTracer) CreatePending(kind, dir string) {
	logging.Trace("document.create.pending", map[string]interface{}{"kind": kind, "dir": dir})
}

func (DocumentTracer) CreateCommitted(kind, path string) {
	logging.Trace("document.create.committed", map[string]interface{}{"kind": kind, "path": path})
}

func (DocumentTracer) CreateFailed(kind string, err error) {
	logging.Trace("document.create.failed", map[string]interface{}{"kind": kind, "error": errString(err)})
}

func (DocumentTracer) Loaded(path string, cells int) {
	logging.Trace("document.loaded", map[string]interface{}{"path": path, "cells": cells})
}

func (DocumentTracer) Saved(path string) {
	logging.Trace("document.saved", map[string]interface{}{"path": path})
}

func (DocumentTracer) Renamed(from, to string) {
	logging.Trace("document.renamed", map[string]interface{}{"from": from, "to": to})
}

func (DocumentTracer) Teardown(err error) {
	logging.Trace("document.teardown", map[string]interface{}{"error": errString(err)})
}

func (CheckpointTracer) Listed(count int) {
	logging.Trace("checkpoint.listed", map[string]interface{}{"count": count})
}

func (CheckpointTracer) Created(id string) {
	logging.Trace("checkpoint.created", map[string]interface{}{"id": id})
}

func (CheckpointTracer) Restored(id string) {
	logging.Trace("checkpoint.restored", map[string]interface{}{"id": id})
}

func (CheckpointTracer) Rendered(entries int) {
	logging.Trace("checkpoint.rendered", map[string]interface{}{"entries": entries})
}

func (TrustTracer) Changed(trusted bool) {
	logging.Trace("trust.changed", map[string]interface{}{"trusted": trusted})
}

func (KernelTracer) Op(op, kernelID string, err error) {
	logging.Trace("kernel."+op, map[string]interface{}{"kernel": kernelID, "error": errString(err)})
}

func (KernelTracer) Execute(kernelID string, cells int) {
	logging.Trace("kernel.execute", map[string]interface{}{"kernel": kernelID, "cells": cells})
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
