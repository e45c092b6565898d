// Package render groups the visual outputs of character networks.
//
// The [nodelink] subpackage draws the network as an undirected node-link
// diagram through Graphviz.
//
// [nodelink]: github.com/matzehuels/comicweb/pkg/render/nodelink
package render
