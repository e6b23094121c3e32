// Package transform post-processes generated mazes.
//
// Braiding removes dead ends four different ways (link through,
// delete, straighten, twist), each reporting how many it removed.
// The template engine works on the other side of generation: it
// removes potential edges to build hard walls, rooms and spirals
// that no carver can violate, with a log for putting the adjacency
// back afterwards.
package transform
