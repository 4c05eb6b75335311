package ingredient

// 同義詞表：原始片語 -> 規範名稱
// 程式啟動後唯讀；多詞完整匹配優先於逐詞處理，
// 所以 "chicken breast" 會對應到 "chicken" 而不會剩下 "breast"
var synonymTable = map[string]string{
	// 起司類
	"mozz":              "cheese",
	"mozzarella":        "cheese",
	"mozzarella cheese": "cheese",
	"parm":              "cheese",
	"parmesan":          "cheese",
	"parmesan cheese":   "cheese",
	"cheddar":           "cheese",
	"cheddar cheese":    "cheese",
	"swiss cheese":      "cheese",

	// 肉類
	"chicken breast": "chicken",
	"chicken thigh":  "chicken",
	"chicken leg":    "chicken",
	"ground beef":    "beef",
	"beef mince":     "beef",
	"beef steak":     "beef",
	"pork chop":      "pork",
	"bacon strips":   "bacon",
	"salmon fillet":  "salmon",
	"tuna steak":     "tuna",

	// 蔬菜類
	"bell pepper":   "bell pepper",
	"green pepper":  "bell pepper",
	"red pepper":    "bell pepper",
	"yellow pepper": "bell pepper",
	"sweet pepper":  "bell pepper",
	"green onion":   "scallion",
	"spring onion":  "scallion",
	"roma tomato":   "tomato",
	"cherry tomato": "tomato",
	"grape tomato":  "tomato",

	// 香料與調味料
	"black pepper": "pepper",
	"white pepper": "pepper",
	"sea salt":     "salt",
	"table salt":   "salt",
	"kosher salt":  "salt",
	"basil leaves": "basil",

	// 乳製品
	"whole milk":   "milk",
	"skim milk":    "milk",
	"heavy cream":  "cream",
	"sour cream":   "cream",
	"greek yogurt": "yogurt",
	"plain yogurt": "yogurt",

	// 穀物與澱粉
	"brown rice":        "rice",
	"white rice":        "rice",
	"jasmine rice":      "rice",
	"basmati rice":      "rice",
	"whole wheat pasta": "pasta",
	"penne pasta":       "pasta",
	"penne":             "pasta",
	"spaghetti":         "pasta",
	"macaroni":          "pasta",
	"bread crumbs":      "breadcrumbs",
	"panko":             "breadcrumbs",

	// 油與醋
	"olive oil":           "oil",
	"vegetable oil":       "oil",
	"canola oil":          "oil",
	"coconut oil":         "oil",
	"balsamic vinegar":    "vinegar",
	"white vinegar":       "vinegar",
	"apple cider vinegar": "vinegar",
}

// 單位詞：出現在任何位置都會被移除
var unitWords = map[string]struct{}{
	"cup": {}, "cups": {}, "tablespoon": {}, "tablespoons": {}, "tbsp": {},
	"teaspoon": {}, "teaspoons": {}, "tsp": {}, "pound": {}, "pounds": {},
	"lb": {}, "lbs": {}, "ounce": {}, "ounces": {}, "oz": {},
	"gram": {}, "grams": {}, "g": {}, "kilogram": {}, "kg": {}, "ml": {},
	"liter": {}, "liters": {}, "l": {}, "piece": {}, "pieces": {},
	"slice": {}, "slices": {}, "clove": {}, "cloves": {}, "bunch": {},
	"head": {}, "can": {}, "cans": {}, "jar": {}, "bottle": {},
	"package": {}, "pack": {}, "bag": {}, "box": {}, "container": {},
}

// 數量詞
var quantityWords = map[string]struct{}{
	"half": {}, "quarter": {}, "third": {}, "some": {}, "little": {},
	"bit": {}, "lots": {}, "few": {}, "several": {}, "many": {},
	"much": {}, "leftover": {}, "remaining": {},
	"one": {}, "two": {}, "three": {}, "four": {}, "five": {},
	"six": {}, "seven": {}, "eight": {}, "nine": {}, "ten": {},
}

// 描述詞：不影響食譜匹配的修飾語
var descriptorWords = map[string]struct{}{
	"fresh": {}, "dried": {}, "frozen": {}, "canned": {}, "chopped": {},
	"diced": {}, "minced": {}, "sliced": {}, "shredded": {}, "grated": {},
	"cooked": {}, "raw": {}, "organic": {}, "whole": {}, "ground": {},
	"crushed": {}, "fine": {}, "coarse": {}, "extra": {}, "virgin": {},
	"pure": {}, "unsalted": {}, "salted": {}, "sweetened": {}, "unsweetened": {},
	"large": {}, "small": {}, "medium": {}, "big": {}, "thin": {}, "thick": {},
}

// 虛詞
var fillerWords = map[string]struct{}{
	"of": {}, "for": {}, "to": {}, "and": {}, "or": {},
	"a": {}, "an": {}, "the": {}, "any": {},
}

// isStopword 判斷單詞是否應被移除
func isStopword(w string) bool {
	if _, ok := unitWords[w]; ok {
		return true
	}
	if _, ok := quantityWords[w]; ok {
		return true
	}
	if _, ok := descriptorWords[w]; ok {
		return true
	}
	if _, ok := fillerWords[w]; ok {
		return true
	}
	return false
}
