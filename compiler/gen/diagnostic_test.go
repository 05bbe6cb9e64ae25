package gen

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/buildergen/compiler/load"
)

func TestReporter(t *testing.T) {
	ctx := context.Background()
	el := &load.Element{Kind: load.KindStruct, Name: "User", Package: "demo", Pos: "user.go:3:6"}
	r := NewReporter(nil)
	r.Note(ctx, el, "generated builder: demo.UserBuilder")
	r.Error(ctx, el, errors.New("boom"))

	diags := r.Diagnostics()
	require.Len(t, diags, 2)
	assert.Equal(t, SeverityNote, diags[0].Severity)
	assert.Equal(t, SeverityError, diags[1].Severity)
	assert.Equal(t, "boom", diags[1].Message)
	notes, errs := r.Counts()
	assert.Equal(t, 1, notes)
	assert.Equal(t, 1, errs)
}

func TestDiagnostic_String(t *testing.T) {
	el := &load.Element{Kind: load.KindStruct, Name: "User", Package: "demo", Pos: "user.go:3:6"}
	d := Diagnostic{Severity: SeverityNote, Message: "generated builder: demo.UserBuilder", Element: el}
	assert.Equal(t, "user.go:3:6: demo.User: NOTE: generated builder: demo.UserBuilder", d.String())

	d = Diagnostic{Severity: SeverityError, Message: "boom"}
	assert.Equal(t, "ERROR: boom", d.String())
}
