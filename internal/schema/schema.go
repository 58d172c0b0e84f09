// Package schema validates raw request documents against the embedded JSON
// Schemas for each tool's input.
package schema

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schemas/negotiation.schema.json
var negotiationSchemaJSON []byte

//go:embed schemas/supplier.schema.json
var supplierSchemaJSON []byte

var printer = message.NewPrinter(language.English)

var (
	negotiationSchema = mustCompile(negotiationSchemaJSON, "negotiation.schema.json")
	supplierSchema    = mustCompile(supplierSchemaJSON, "supplier.schema.json")
)

func mustCompile(raw []byte, name string) *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("schema: parse embedded %s: %v", name, err))
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(name, doc); err != nil {
		panic(fmt.Sprintf("schema: add %s: %v", name, err))
	}
	sch, err := c.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("schema: compile %s: %v", name, err))
	}
	return sch
}

// ValidateNegotiation returns one message per violation in a negotiation
// request body. A nil result means the document is valid.
func ValidateNegotiation(data []byte) []string {
	return validate(negotiationSchema, data)
}

// ValidateSupplier returns one message per violation in a supplier request body.
func ValidateSupplier(data []byte) []string {
	return validate(supplierSchema, data)
}

func validate(sch *jsonschema.Schema, data []byte) []string {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return []string{fmt.Sprintf("/: malformed JSON: %v", err)}
	}
	err = sch.Validate(doc)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{fmt.Sprintf("/: %v", err)}
	}
	var errs []string
	collect(ve, &errs)
	return errs
}

func collect(ve *jsonschema.ValidationError, errs *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/" + strings.Join(ve.InstanceLocation, "/")
		*errs = append(*errs, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(printer)))
		return
	}
	for _, c := range ve.Causes {
		collect(c, errs)
	}
}
