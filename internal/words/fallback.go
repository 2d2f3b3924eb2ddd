package words

import "strings"

// fallbackLists keep the engine playable when no corpus can be read.
// Each list contains a few connected ladders so pairs can still be found.
var fallbackLists = map[int]string{
	4: `WORD GAME PLAY TIME MOVE STEP PATH GOAL WORK PART LIFE HOME HAND HEAD
		YEAR BACK TURN MAKE TAKE COME GOOD BEST SAME LONG LAST NEXT HELP LOOK
		FIND GIVE WORE CORE CORD CARD WARD WARM CARE CANE CAME GATE HATE HAVE
		HIVE FIVE FIRE HIRE MORE MODE MADE MALE MILE MINE LINE LIKE LAKE LATE
		LANE LAND BAND BEND BOND BOLD HOLD HOLE POLE PALE PAGE SAGE SALE TALE
		TALL WALL WELL TELL BELL BELT REST TEST NEST WEST WENT WANT`,
	5: `WORDS GAMES PLAYS MOVES STEPS PATHS GOALS START WORLD WATER PLACE RIGHT
		THINK GREAT HOUSE WHERE EVERY THREE SMALL LARGE MIGHT STILL NEVER WOULD
		FIRST SOUND WHITE BLACK NIGHT LIGHT ABOUT AFTER AGAIN BELOW STATE STORY
		STONE STORE SHORE SHARE STARE SMART SHAPE SHADE SPADE SPACE PLANE PLANT
		TRACE GRACE GRADE TRADE TREAD BREAD BROAD BLOCK CLOCK STOCK SHOCK SKATE
		SLATE PLATE CRATE`,
	6: `CHANGE LETTER PUZZLE SOLVER WINNER PLAYER MOTHER FATHER FRIEND FAMILY
		PEOPLE ANIMAL GARDEN FOREST STREAM BRIDGE CASTLE GOLDEN SILVER PURPLE
		ORANGE YELLOW BRIGHT STRONG SIMPLE BEFORE DURING ALWAYS ALMOST AROUND
		SCHOOL NUMBER ANSWER LISTEN FOLLOW FINGER BREATH HEIGHT LENGTH BETTER
		BATTER BUTTER BITTER LITTER SETTER MATTER LATTER HATTER PATTER POTTER
		HOTTER COTTER CUTTER GUTTER MUTTER PUTTER`,
}

// Fallback returns the built-in Set for length. Lengths without a list
// produce an empty Set.
func Fallback(length int) *Set {
	return NewSet(length, strings.Fields(fallbackLists[length]))
}
