package diceware

// Symbols is the classic diceware substitution grid. A symbol is chosen by
// two rolls: the first picks the row, the second the column.
var Symbols = [6][6]rune{
	{'~', '!', '#', '$', '%', '^'},
	{'&', '*', '(', ')', '-', '='},
	{'+', '[', ']', '\\', '{', '}'},
	{':', ';', '"', '\'', '<', '>'},
	{'?', '/', '0', '1', '2', '3'},
	{'4', '5', '6', '7', '8', '9'},
}

// IsSymbol reports whether r appears in the substitution grid.
func IsSymbol(r rune) bool {
	for _, row := range Symbols {
		for _, s := range row {
			if s == r {
				return true
			}
		}
	}
	return false
}
