package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// column par columna/valor usado por los helpers de upsert.
type column struct {
	Name  string
	Value any
}

// upsertSpec describe un registro identificado por clave natural.
// Keys forman la clave única; Fields se escriben al insertar y al actualizar;
// OnInsert solo al insertar (ids, valores por defecto). Touch agrega updated_at = now().
type upsertSpec struct {
	Table    string
	Keys     []column
	Fields   []column
	OnInsert []column
	Touch    bool
}

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// buildUpsert arma el INSERT ... ON CONFLICT ... RETURNING (xmax = 0). La columna
// devuelta es true cuando la fila se insertó y false cuando se actualizó.
func buildUpsert(s upsertSpec) (string, []any) {
	cols := make([]string, 0, len(s.Keys)+len(s.Fields)+len(s.OnInsert)+1)
	marks := make([]string, 0, cap(cols))
	args := make([]any, 0, cap(cols))
	add := func(c column) {
		args = append(args, c.Value)
		cols = append(cols, ident(c.Name))
		marks = append(marks, fmt.Sprintf("$%d", len(args)))
	}
	for _, c := range s.Keys {
		add(c)
	}
	for _, c := range s.Fields {
		add(c)
	}
	for _, c := range s.OnInsert {
		add(c)
	}
	if s.Touch {
		cols = append(cols, "updated_at")
		marks = append(marks, "now()")
	}

	keyCols := make([]string, len(s.Keys))
	for i, c := range s.Keys {
		keyCols[i] = ident(c.Name)
	}
	var sets []string
	for _, c := range s.Fields {
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", ident(c.Name), ident(c.Name)))
	}
	if s.Touch {
		sets = append(sets, "updated_at = now()")
	}
	if len(sets) == 0 {
		// Sin campos que actualizar: tocar la clave para que RETURNING devuelva la fila existente.
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", keyCols[0], keyCols[0]))
	}

	sql := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s RETURNING (xmax = 0)",
		ident(s.Table), strings.Join(cols, ", "), strings.Join(marks, ", "),
		strings.Join(keyCols, ", "), strings.Join(sets, ", "),
	)
	return sql, args
}

// buildEnsure arma el INSERT ... ON CONFLICT DO NOTHING de get-or-create.
func buildEnsure(s upsertSpec) (string, []any) {
	cols := make([]string, 0, len(s.Keys)+len(s.OnInsert))
	marks := make([]string, 0, cap(cols))
	args := make([]any, 0, cap(cols))
	for _, c := range append(append([]column{}, s.Keys...), s.OnInsert...) {
		args = append(args, c.Value)
		cols = append(cols, ident(c.Name))
		marks = append(marks, fmt.Sprintf("$%d", len(args)))
	}
	keyCols := make([]string, len(s.Keys))
	for i, c := range s.Keys {
		keyCols[i] = ident(c.Name)
	}
	sql := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO NOTHING",
		ident(s.Table), strings.Join(cols, ", "), strings.Join(marks, ", "), strings.Join(keyCols, ", "),
	)
	return sql, args
}

// upsertByKey crea o actualiza la fila identificada por Keys. created indica si se insertó.
func upsertByKey(ctx context.Context, q Querier, s upsertSpec) (created bool, err error) {
	if len(s.Keys) == 0 {
		return false, fmt.Errorf("upsert %s: sin clave", s.Table)
	}
	sql, args := buildUpsert(s)
	if err := q.QueryRow(ctx, sql, args...).Scan(&created); err != nil {
		return false, fmt.Errorf("upsert %s: %w", s.Table, err)
	}
	return created, nil
}

// ensureByKey inserta la fila solo si la clave no existe (get-or-create). Fields se ignora.
func ensureByKey(ctx context.Context, q Querier, s upsertSpec) (created bool, err error) {
	if len(s.Keys) == 0 {
		return false, fmt.Errorf("ensure %s: sin clave", s.Table)
	}
	sql, args := buildEnsure(s)
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("ensure %s: %w", s.Table, err)
	}
	return tag.RowsAffected() == 1, nil
}
