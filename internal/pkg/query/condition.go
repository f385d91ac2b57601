package query

import "fmt"

// Condition is a WHERE clause fragment. SQL returns the fragment and its parameters;
// paramIndex is the first free index for generated names (@p0, @p1, ...).
type Condition interface {
	SQL(paramIndex int) (string, map[string]interface{})
}

type comparison struct {
	field    string
	operator string
	value    interface{}
}

func (c *comparison) SQL(paramIndex int) (string, map[string]interface{}) {
	name := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s %s @%s", c.field, c.operator, name), map[string]interface{}{name: c.value}
}

// Eq generates "field = @pN".
func Eq(field string, value interface{}) Condition {
	return &comparison{field: field, operator: "=", value: value}
}

// Ne generates "field != @pN".
func Ne(field string, value interface{}) Condition {
	return &comparison{field: field, operator: "!=", value: value}
}

// Lt generates "field < @pN".
func Lt(field string, value interface{}) Condition {
	return &comparison{field: field, operator: "<", value: value}
}

// Lte generates "field <= @pN".
func Lte(field string, value interface{}) Condition {
	return &comparison{field: field, operator: "<=", value: value}
}

// Gt generates "field > @pN".
func Gt(field string, value interface{}) Condition {
	return &comparison{field: field, operator: ">", value: value}
}

// Gte generates "field >= @pN".
func Gte(field string, value interface{}) Condition {
	return &comparison{field: field, operator: ">=", value: value}
}

type inCondition struct {
	field  string
	values interface{}
}

// In matches any element of an array parameter: "field IN UNNEST(@pN)".
// values must be a slice type Spanner can bind, such as []string.
func In(field string, values interface{}) Condition {
	return &inCondition{field: field, values: values}
}

func (c *inCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	name := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s IN UNNEST(@%s)", c.field, name), map[string]interface{}{name: c.values}
}

type nullCheck struct {
	field string
	not   bool
}

// IsNull generates "field IS NULL".
func IsNull(field string) Condition {
	return &nullCheck{field: field}
}

// IsNotNull generates "field IS NOT NULL".
func IsNotNull(field string) Condition {
	return &nullCheck{field: field, not: true}
}

func (c *nullCheck) SQL(int) (string, map[string]interface{}) {
	if c.not {
		return c.field + " IS NOT NULL", map[string]interface{}{}
	}
	return c.field + " IS NULL", map[string]interface{}{}
}
