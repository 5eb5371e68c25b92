package imbe

// interleave[p] is the channel position of deinterleaved bit p. Codeword
// bits 24g..24g+23 take two of every twelve channel bits.
var interleave = [FrameBits]int{
	0, 7, 12, 19, 24, 31, 36, 43, 48, 55, 60, 67,
	72, 79, 84, 91, 96, 103, 108, 115, 120, 127, 132, 139,
	1, 6, 13, 18, 25, 30, 37, 42, 49, 54, 61, 66,
	73, 78, 85, 90, 97, 102, 109, 114, 121, 126, 133, 138,
	2, 9, 14, 21, 26, 33, 38, 45, 50, 57, 62, 69,
	74, 81, 86, 93, 98, 105, 110, 117, 122, 129, 134, 141,
	3, 8, 15, 20, 27, 32, 39, 44, 51, 56, 63, 68,
	75, 80, 87, 92, 99, 104, 111, 116, 123, 128, 135, 140,
	4, 11, 16, 23, 28, 35, 40, 47, 52, 59, 64, 71,
	76, 83, 88, 95, 100, 107, 112, 119, 124, 131, 136, 143,
	5, 10, 17, 22, 29, 34, 41, 46, 53, 58, 65, 70,
	77, 82, 89, 94, 101, 106, 113, 118, 125, 130, 137, 142,
}
