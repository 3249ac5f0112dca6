// Package model holds the request and response documents of the SSC web
// service as plain structs bound to XML. Polymorphic schema elements
// (conditions, conjunction areas, external field models, graph options) are
// sealed interfaces whose concrete kinds are written with xsi:type.
package model

import "encoding/xml"

func rootName(local string) xml.Name { return xml.Name{Space: Namespace, Local: local} }

// NewQueryRequest wraps q in the root document sent to /conjunctions.
func NewQueryRequest(q *ConjunctionQuery) *QueryRequest {
	return &QueryRequest{XMLName: rootName("QueryRequest"), Request: q}
}

// NewDataRequest returns an empty /locations request document.
func NewDataRequest() *DataRequest {
	return &DataRequest{XMLName: rootName("DataRequest")}
}

// NewGraphRequest returns an empty /graphs request document.
func NewGraphRequest() *GraphRequest {
	return &GraphRequest{XMLName: rootName("GraphRequest")}
}
