/*
Package sppf implements a "Shared Packed Parse Forest".

A packed parse forest re-uses existing parse tree nodes between different
parse trees. For a conventional non-ambiguous parse, a parse forest degrades
to a single tree. Ambiguous grammars, on the other hand, may result in parse
runs where more than one parse tree is created. To save space these parse
trees will share common nodes.

The forest is binarized: a node for a rule with more than two right hand side
symbols is split into a chain of intermediate nodes, each standing for a prefix
of the rule's right hand side. Every node has one or more packed nodes as
children, one for each way the node has been derived. A packed node has
at most two children, left (the intermediate node of the prefix) and right
(the node for the last symbol of the prefix).

Clients will usually not care about intermediate nodes. Alternatives flattens
them away and presents a symbol node's derivations as sequences of children.
A Cursor lets clients walk a forest as if it were a tree, optionally pruning
ambiguous alternatives.

	      S (0…3)
	         │
	      ┌──┴──┐            packed node: rule S → NP VP
	   NP (0…1) VP (1…3)

References

Elizabeth Scott, Adrian Johnstone: "SPPF-Style Parsing From Earley Recognisers",
Electronic Notes in Theoretical Computer Science 203 (2008).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sppf

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'chartparse.cfg'.
func tracer() tracing.Trace {
	return tracing.Select("chartparse.cfg")
}
