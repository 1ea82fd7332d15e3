/*
Package outfile decodes the binary dump NaSt2D writes at the end of a run.

The dump is a plain concatenation of C values with no header, padding or
length prefixes:

	- imax, jmax: one signed integer each. The integer width is whatever
	  sizeof(int) was on the machine that ran the solver, 4 bytes by default.
	- U, V, P, TEMP: (imax+2)*(jmax+2) IEEE-754 doubles each, row-major, so
	  element [x][y] is the (x*(jmax+2)+y)th value of the block.
	- FLAG: (imax+2)*(jmax+2) signed integers, row-major.

All values use the byte order of the machine that wrote them.

The stream is consumed through two cursors, an IntCursor and a
FloatCursor, which share one underlying reader. Each advances only when
read, and the decoder alternates between them in the fixed order above.
Neither cursor can be rewound.

To decode a dump with the default settings:

	raw, err := outfile.Decode(f)

To decode a dump written on a machine with 8-byte ints:

	dec := outfile.NewDecoder()
	dec.IntWidth = 8
	raw, err := dec.Decode(f)
*/
package outfile
