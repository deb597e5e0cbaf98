package browser

import (
	"fmt"

	"github.com/Undanomi/OSINT-GAME-sub000/internal/shared/types"
)

// Success creates successful result
func Success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

// Failure creates failed result
func Failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}

// GetString extracts string parameter
func GetString(params map[string]interface{}, key string, required bool) (string, error) {
	val, ok := params[key]
	if !ok || val == nil {
		if required {
			return "", fmt.Errorf("%s parameter required", key)
		}
		return "", nil
	}

	str, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%s must be string", key)
	}

	if required && str == "" {
		return "", fmt.Errorf("%s cannot be empty", key)
	}

	return str, nil
}

// GetBool extracts bool parameter
func GetBool(params map[string]interface{}, key string, defaultVal bool) bool {
	b, ok := params[key].(bool)
	if !ok {
		return defaultVal
	}
	return b
}

// GetInt extracts an integer parameter. JSON numbers arrive as float64.
func GetInt(params map[string]interface{}, key string, required bool) (int, error) {
	val, ok := params[key]
	if !ok || val == nil {
		if required {
			return 0, fmt.Errorf("%s parameter required", key)
		}
		return 0, nil
	}

	switch v := val.(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("%s must be number", key)
	}
}

// tabIDFrom prefers the tab_id parameter over the execution context
func tabIDFrom(params map[string]interface{}, appCtx *types.Context) string {
	if id, _ := params["tab_id"].(string); id != "" {
		return id
	}
	if appCtx != nil && appCtx.TabID != nil {
		return *appCtx.TabID
	}
	return ""
}
