package entity

import "encoding/json"

// EncodeFeatures serializa la lista de características al texto que se guarda en la columna features.
// Una lista nil se guarda como "[]".
func EncodeFeatures(features []string) (string, error) {
	if features == nil {
		features = []string{}
	}
	b, err := json.Marshal(features)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeFeatures reconstruye la lista guardada. Texto vacío o corrupto produce una lista vacía, nunca error.
func DecodeFeatures(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil || out == nil {
		return []string{}
	}
	return out
}
