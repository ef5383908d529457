// Package parser reads the boxaro DSL into a [diagram.Diagram].
//
// The DSL is line oriented and indentation significant:
//
//	box Top
//	    inputs
//	        In1
//	    outputs
//	        Out1
//	    box Proc
//	        shape ellipse
//	    connections
//	        In1 --> Proc
//	        Proc -- [error] --> Out1
//
// A line belongs to the closest preceding line that is strictly less
// indented. Tabs count as four spaces unless [WithTabWidth] says otherwise.
//
// Problems that only affect one line (an unparsable connection, a `label`
// outside a box, an unknown shape) do not stop the parse. They are returned
// as [Diagnostic] values in the [Result], one per offending line. With
// [WithStrict] any error-severity diagnostic makes [Parse] fail instead.
package parser
