package view_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/roster/pkg/core"
	"github.com/aretw0/roster/pkg/view"
)

func setupTable(t *testing.T) (*core.Controller, *view.Table) {
	t.Helper()
	table := view.NewTable()
	return core.NewController(core.NewStore(""), table, nil), table
}

func TestTable_AddRendersDefaults(t *testing.T) {
	ctrl, table := setupTable(t)
	ctrl.AddRecord()

	rows := table.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, core.ID("person-id-0"), rows[0].ID)
	assert.Equal(t, "false", rows[0].Cells[core.FieldAvailable])
	assert.Equal(t, "", rows[0].Cells[core.FieldFirstName])
	assert.False(t, rows[0].Dirty)
	assert.False(t, rows[0].Active)
	assert.False(t, table.Form().Visible())
}

func TestTable_InputMarksActiveRowDirty(t *testing.T) {
	ctrl, table := setupTable(t)
	rec := ctrl.AddRecord()
	require.NoError(t, ctrl.Select(rec.ID()))

	require.NoError(t, table.Form().Input(core.FieldFirstName, "Ada"))

	rows := table.Rows()
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Active)
	assert.True(t, rows[0].Dirty)
	assert.Equal(t, "Ada", rows[0].Cells[core.FieldFirstName])
	assert.Equal(t, []core.Field{core.FieldFirstName}, rows[0].Modified)
	assert.Equal(t, "Ada", table.Form().Value(core.FieldFirstName))
}

func TestTable_InactiveRowIgnoresNotifications(t *testing.T) {
	ctrl, table := setupTable(t)
	a := ctrl.AddRecord()
	b := ctrl.AddRecord()
	require.NoError(t, ctrl.Select(b.ID()))

	a.Role().SetProvisional("Hidden")

	rows := table.Rows()
	assert.Equal(t, "", rows[0].Cells[core.FieldRole])
	assert.False(t, rows[0].Dirty)
}

func TestTable_SaveClearsMarks(t *testing.T) {
	ctrl, table := setupTable(t)
	rec := ctrl.AddRecord()
	require.NoError(t, ctrl.Select(rec.ID()))
	require.NoError(t, table.Form().Input(core.FieldAvailable, "true"))

	require.NoError(t, ctrl.SaveSelected())

	row := table.Rows()[0]
	assert.False(t, row.Dirty)
	assert.Empty(t, row.Modified)
	assert.Equal(t, "true", row.Cells[core.FieldAvailable])
}

func TestTable_ResetRestoresCellsAndForm(t *testing.T) {
	ctrl, table := setupTable(t)
	rec := ctrl.AddRecord()
	require.NoError(t, ctrl.Select(rec.ID()))
	require.NoError(t, table.Form().Input(core.FieldLastName, "Lovelace"))
	require.NoError(t, ctrl.SaveSelected())
	require.NoError(t, table.Form().Input(core.FieldLastName, "Byron"))

	require.NoError(t, ctrl.ResetSelected())

	row := table.Rows()[0]
	assert.Equal(t, "Lovelace", row.Cells[core.FieldLastName])
	assert.False(t, row.Dirty)
	assert.Equal(t, "Lovelace", table.Form().Value(core.FieldLastName))
}

func TestTable_RemoveHidesForm(t *testing.T) {
	ctrl, table := setupTable(t)
	ctrl.AddRecord()
	second := ctrl.AddRecord()
	require.NoError(t, ctrl.SelectAt(0))
	require.True(t, table.Form().Visible())

	require.NoError(t, ctrl.RemoveSelected())

	rows := table.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, second.ID(), rows[0].ID)
	assert.False(t, table.Form().Visible())
	assert.ErrorIs(t, table.Form().Input(core.FieldRole, "x"), view.ErrNoRecordBound)
}

func TestTable_DeselectUnbindsForm(t *testing.T) {
	ctrl, table := setupTable(t)
	rec := ctrl.AddRecord()
	require.NoError(t, ctrl.Select(rec.ID()))

	ctrl.ClearSelection()

	assert.False(t, table.Form().Visible())
	assert.ErrorIs(t, table.Form().Input(core.FieldRole, "X"), view.ErrNoRecordBound)
	row := table.Rows()[0]
	assert.False(t, row.Active)
	assert.False(t, row.Dirty)
	assert.False(t, rec.IsDirty())
}

func TestTable_FormRejectsUnknownField(t *testing.T) {
	ctrl, table := setupTable(t)
	rec := ctrl.AddRecord()
	require.NoError(t, ctrl.Select(rec.ID()))

	err := table.Form().Input("salary", "1")
	assert.ErrorIs(t, err, core.ErrUnknownField)
}

func TestTable_Render(t *testing.T) {
	ctrl, table := setupTable(t)
	ctrl.AddRecord()
	rec := ctrl.AddRecord()
	require.NoError(t, ctrl.Select(rec.ID()))
	require.NoError(t, table.Form().Input(core.FieldFirstName, "Grace"))

	var buf bytes.Buffer
	require.NoError(t, table.Render(&buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "FIRSTNAME")
	assert.Contains(t, lines[0], "AVAILABLE")
	assert.True(t, strings.HasPrefix(lines[2], ">*"))
	assert.Contains(t, lines[2], "Grace'")
	assert.NotContains(t, lines[1], "*")
}

func TestTable_State(t *testing.T) {
	ctrl, table := setupTable(t)
	rec := ctrl.AddRecord()
	require.NoError(t, ctrl.Select(rec.ID()))
	require.NoError(t, table.Form().Input(core.FieldRole, "Lead"))

	state, ok := table.State().(view.TableState)
	require.True(t, ok)
	assert.Equal(t, 1, state.Rows)
	assert.Equal(t, 1, state.DirtyRows)
	assert.Equal(t, rec.ID(), state.Active)
	assert.True(t, state.FormVisible)

	ctrlState := ctrl.State().(core.ControllerState)
	assert.Equal(t, "table", ctrlState.Presenter)
}
