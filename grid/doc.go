/*
Package grid holds decoded NaSt2D grids, classifies their boundary cells
and writes them as JSON fixtures.

A fixture document has the keys cell_type, pressure, size, u and v, in
that order. Every array is a record with the keys data, dim and v. Keys are
sorted at every level.

Floats are written in Go's shortest round-trip form, so a whole value such
as 2.0 appears as 2. Readers parsing into float fields get the same value
back. JSON has no NaN or infinity, so a grid holding either fails to encode
with an error instead of writing non-standard tokens.
*/
package grid
