/*
Package view renders scan forests for debugging: colorized console dumps
and Graphviz DOT exports of single trees.

Output is meant for humans chasing a weight or scheduling bug; nothing in
here is functionally essential to the scan pipeline.
*/
package view
