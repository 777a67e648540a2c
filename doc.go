// Package roster is the Composition Root for the roster editor.
//
// It connects the domain (observable fields, records, the controller) with the
// headless presentation layer and the script runner.
//
// Philosophy:
//
// A master/detail editor is mostly wiring. The only contract worth getting right is
// the observable field: edits are provisional until saved, and a reset restores the
// last committed value. Everything else is a consumer of its notifications.
//
// Features:
//
//   - **Two-phase fields**: `observable.Value[T]` tracks a committed baseline and a draft.
//   - **Explicit selection**: the controller holds the selected id; nothing is looked up from rendered output.
//   - **Headless view**: a text table with dirty-row and modified-cell marks.
//   - **Scripts**: YAML/JSON event files replay UI sessions for demos and tests.
//
// Usage:
//
//	ctrl := roster.New(roster.WithLogger(logger))
//
//	rec := ctrl.AddRecord()
//	_ = ctrl.Select(rec.ID())
//	rec.FirstName().SetProvisional("Ada")
//	_ = ctrl.SaveSelected()
package roster
