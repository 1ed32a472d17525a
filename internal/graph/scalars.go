package graph

import (
	"time"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
)

const dateLayout = "2006-01-02"

// Date is a calendar date written as YYYY-MM-DD.
var Date = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "Date",
	Description: "A calendar date in YYYY-MM-DD form.",
	Serialize:   serializeDate,
	ParseValue:  parseDate,
	ParseLiteral: func(v ast.Value) interface{} {
		if s, ok := v.(*ast.StringValue); ok {
			return parseDate(s.Value)
		}
		return nil
	},
})

func serializeDate(value interface{}) interface{} {
	switch v := value.(type) {
	case time.Time:
		return v.Format(dateLayout)
	case *time.Time:
		if v == nil {
			return nil
		}
		return v.Format(dateLayout)
	case string:
		return v
	}
	return nil
}

func parseDate(value interface{}) interface{} {
	s, ok := value.(string)
	if !ok {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		// Accept full timestamps from clients that send them for dates too.
		if t, err = time.Parse(time.RFC3339, s); err != nil {
			return nil
		}
	}
	return t
}
