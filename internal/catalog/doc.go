// Package catalog implements the curated, provider-scoped type catalog.
//
// A catalog document maps each category to the toolkit module that holds its
// node classes, and each node_id to its category, concrete class name and
// description:
//
//	provider: aws
//	modules:
//	  compute: nodes/aws/compute
//	nodes:
//	  lambda:
//	    category: compute
//	    class_name: Lambda
//	    description: Serverless function compute
//
// Documents are validated at load time. Schema violations are fatal and
// reported with the offending provider and entry; a category missing from
// the module map is only a warning. A loaded Catalog is never mutated.
package catalog
