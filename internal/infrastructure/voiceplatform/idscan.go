package voiceplatform

import (
	"bytes"
	"encoding/json"
	"slices"
	"strconv"
)

// maxIDScanDepth profundidad máxima de la búsqueda de "ID" en respuestas sin forma conocida.
const maxIDScanDepth = 8

// decodeGeneric decodifica JSON conservando los números como json.Number.
func decodeGeneric(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// FindID busca un campo llamado "ID" (o "id") con valor escalar no vacío en v,
// primero en el nivel actual y luego en los hijos. Las claves se recorren en orden
// alfabético para que el resultado sea determinista. No baja más de maxDepth niveles.
func FindID(v any, maxDepth int) (string, bool) {
	if maxDepth < 0 {
		return "", false
	}
	switch t := v.(type) {
	case map[string]any:
		for _, key := range []string{"ID", "id"} {
			if id, ok := scalarID(t[key]); ok {
				return id, true
			}
		}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, key := range keys {
			if id, ok := FindID(t[key], maxDepth-1); ok {
				return id, true
			}
		}
	case []any:
		for _, item := range t {
			if id, ok := FindID(item, maxDepth-1); ok {
				return id, true
			}
		}
	}
	return "", false
}

// pathID lee v[k0][k1]... como ID escalar.
func pathID(v any, keys ...string) (string, bool) {
	cur := v
	for _, k := range keys {
		m, ok := cur.(map[string]any)
		if !ok {
			return "", false
		}
		cur = m[k]
	}
	return scalarID(cur)
}

func scalarID(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, t != ""
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	default:
		return "", false
	}
}

// boolField lee v[key] como bool; ausente o de otro tipo -> false, false.
func boolField(v any, key string) (value, present bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return false, false
	}
	b, ok := m[key].(bool)
	return b, ok
}
