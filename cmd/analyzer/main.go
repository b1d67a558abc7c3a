// Package main is the analyzer command line: it runs a log batch analysis over a file and
// prints the report sections.
package main

func main() {
	Execute()
}
