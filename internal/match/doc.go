// Package match evaluates the data-driven predicates that pair job records
// with glidein descriptors.
//
// A predicate is a list of clauses, each comparing one job attribute against
// either a literal value or an attribute of the candidate glidein. Clauses
// are conjunctive. Predicates are configuration data and are compiled once
// at load time; nothing in a predicate is ever executed as code.
package match
