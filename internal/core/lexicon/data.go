package lexicon

// vocabulary is ordered roughly by how often an ingredient shows up in a home pantry.
var vocabulary = []string{
	// produce
	"onion", "garlic", "tomatoes", "potatoes", "carrots", "broccoli", "spinach", "peppers",
	"mushrooms", "courgette", "aubergine", "cauliflower", "cabbage", "lettuce", "cucumber",
	"celery", "leeks", "spring onions", "sweet potatoes", "butternut squash", "pumpkin",
	"peas", "sweetcorn", "green beans", "kale", "beetroot", "parsnips", "asparagus",
	"avocado", "chilli", "ginger", "lemon", "lime", "banana", "apples", "oranges", "pears",
	"grapes", "strawberries", "blueberries", "raspberries", "mango", "pineapple", "olives",
	"red onion", "shallots", "radishes", "rocket", "pak choi", "bean sprouts", "fresh herbs",
	"basil", "coriander", "parsley", "mint", "rosemary", "thyme",
	// protein
	"chicken", "beef", "pork", "lamb", "turkey", "ham", "bacon", "sausages", "mince",
	"chorizo", "duck", "eggs", "tofu", "tempeh", "halloumi",
	"salmon", "tuna", "cod", "haddock", "mackerel", "sardines", "trout", "prawns", "crab",
	"mussels", "squid", "anchovies", "fish",
	// dairy
	"milk", "butter", "cheese", "cheddar", "parmesan", "mozzarella", "feta", "cream",
	"sour cream", "cream cheese", "yogurt", "creme fraiche",
	// tins, jars and dry goods
	"chickpeas", "kidney beans", "black beans", "baked beans", "cannellini beans",
	"butter beans", "lentils", "red lentils", "chopped tomatoes", "tomato puree",
	"passata", "coconut milk", "coconut cream", "coconut",
	"rice", "pasta", "spaghetti", "penne", "macaroni", "fusilli", "lasagne sheets",
	"noodles", "couscous", "quinoa", "bulgur wheat", "oats", "bread", "tortillas",
	"wraps", "pitta", "flour", "cornflour", "sugar", "honey", "peanut butter", "tahini",
	"nuts", "peanuts", "cashews", "almonds", "walnuts", "sesame seeds",
	// condiments and seasoning
	"salt", "black pepper", "olive oil", "vegetable oil", "sesame oil", "vinegar",
	"balsamic vinegar", "soy sauce", "fish sauce", "worcestershire sauce", "ketchup",
	"mayonnaise", "mustard", "pesto", "curry paste", "curry powder", "garam masala",
	"cumin", "paprika", "smoked paprika", "turmeric", "chilli flakes", "cinnamon",
	"oregano", "dried herbs", "mixed spice", "stock", "gravy", "hot sauce", "sriracha",
	"hoisin sauce", "salsa", "jam", "lemon juice",
}

// synonymTable maps plurals, singulars, regional spellings, misspellings and branded
// seasonings onto canonical terms.
var synonymTable = synonymMap([][2]string{
	{"onions", "onion"},
	{"yellow onion", "onion"},
	{"white onion", "onion"},
	{"brown onion", "onion"},
	{"red onions", "red onion"},
	{"garlic clove", "garlic"},
	{"garlic cloves", "garlic"},
	{"tomato", "tomatoes"},
	{"cherry tomatoes", "tomatoes"},
	{"plum tomatoes", "tomatoes"},
	{"tinned tomatoes", "chopped tomatoes"},
	{"canned tomatoes", "chopped tomatoes"},
	{"diced tomatoes", "chopped tomatoes"},
	{"tomato paste", "tomato puree"},
	{"potato", "potatoes"},
	{"spud", "potatoes"},
	{"spuds", "potatoes"},
	{"carrot", "carrots"},
	{"brocolli", "broccoli"},
	{"brocoli", "broccoli"},
	{"broccolli", "broccoli"},
	{"pepper", "peppers"},
	{"bell pepper", "peppers"},
	{"bell peppers", "peppers"},
	{"capsicum", "peppers"},
	{"red pepper", "peppers"},
	{"green pepper", "peppers"},
	{"mushroom", "mushrooms"},
	{"zucchini", "courgette"},
	{"courgettes", "courgette"},
	{"eggplant", "aubergine"},
	{"aubergines", "aubergine"},
	{"scallions", "spring onions"},
	{"scallion", "spring onions"},
	{"green onions", "spring onions"},
	{"sweet potato", "sweet potatoes"},
	{"yam", "sweet potatoes"},
	{"corn", "sweetcorn"},
	{"sweet corn", "sweetcorn"},
	{"leek", "leeks"},
	{"parsnip", "parsnips"},
	{"beet", "beetroot"},
	{"beets", "beetroot"},
	{"chili", "chilli"},
	{"chilies", "chilli"},
	{"chillies", "chilli"},
	{"jalapeno", "chilli"},
	{"lemons", "lemon"},
	{"limes", "lime"},
	{"bananas", "banana"},
	{"apple", "apples"},
	{"orange", "oranges"},
	{"pear", "pears"},
	{"strawberry", "strawberries"},
	{"blueberry", "blueberries"},
	{"raspberry", "raspberries"},
	{"olive", "olives"},
	{"shallot", "shallots"},
	{"radish", "radishes"},
	{"arugula", "rocket"},
	{"bok choy", "pak choi"},
	{"cilantro", "coriander"},
	{"herbs", "fresh herbs"},
	{"chicken breast", "chicken"},
	{"chicken breasts", "chicken"},
	{"chicken thighs", "chicken"},
	{"chicken thigh", "chicken"},
	{"chicken legs", "chicken"},
	{"drumsticks", "chicken"},
	{"steak", "beef"},
	{"steaks", "beef"},
	{"beef mince", "mince"},
	{"ground beef", "mince"},
	{"minced beef", "mince"},
	{"pork chops", "pork"},
	{"lamb chops", "lamb"},
	{"sausage", "sausages"},
	{"bangers", "sausages"},
	{"rashers", "bacon"},
	{"egg", "eggs"},
	{"free range eggs", "eggs"},
	{"beancurd", "tofu"},
	{"salmon fillet", "salmon"},
	{"salmon fillets", "salmon"},
	{"smoked salmon", "salmon"},
	{"tuna steak", "tuna"},
	{"canned tuna", "tuna"},
	{"tinned tuna", "tuna"},
	{"shrimp", "prawns"},
	{"shrimps", "prawns"},
	{"prawn", "prawns"},
	{"king prawns", "prawns"},
	{"mussel", "mussels"},
	{"calamari", "squid"},
	{"sardine", "sardines"},
	{"anchovy", "anchovies"},
	{"whole milk", "milk"},
	{"semi skimmed milk", "milk"},
	{"skimmed milk", "milk"},
	{"unsalted butter", "butter"},
	{"salted butter", "butter"},
	{"mature cheddar", "cheddar"},
	{"cheddar cheese", "cheddar"},
	{"parmigiano", "parmesan"},
	{"parmesan cheese", "parmesan"},
	{"double cream", "cream"},
	{"single cream", "cream"},
	{"heavy cream", "cream"},
	{"whipping cream", "cream"},
	{"yoghurt", "yogurt"},
	{"greek yogurt", "yogurt"},
	{"greek yoghurt", "yogurt"},
	{"natural yogurt", "yogurt"},
	{"chickpea", "chickpeas"},
	{"garbanzo beans", "chickpeas"},
	{"garbanzos", "chickpeas"},
	{"chick peas", "chickpeas"},
	{"kidney bean", "kidney beans"},
	{"red kidney beans", "kidney beans"},
	{"black bean", "black beans"},
	{"lentil", "lentils"},
	{"basmati rice", "rice"},
	{"long grain rice", "rice"},
	{"jasmine rice", "rice"},
	{"brown rice", "rice"},
	{"risotto rice", "rice"},
	{"arborio rice", "rice"},
	{"spaghetti pasta", "spaghetti"},
	{"lasagna", "lasagne sheets"},
	{"lasagne", "lasagne sheets"},
	{"egg noodles", "noodles"},
	{"rice noodles", "noodles"},
	{"ramen", "noodles"},
	{"porridge oats", "oats"},
	{"rolled oats", "oats"},
	{"loaf", "bread"},
	{"sourdough", "bread"},
	{"tortilla", "tortillas"},
	{"wrap", "wraps"},
	{"pitta bread", "pitta"},
	{"pita", "pitta"},
	{"plain flour", "flour"},
	{"self raising flour", "flour"},
	{"all purpose flour", "flour"},
	{"corn starch", "cornflour"},
	{"cornstarch", "cornflour"},
	{"caster sugar", "sugar"},
	{"brown sugar", "sugar"},
	{"granulated sugar", "sugar"},
	{"peanut", "peanuts"},
	{"cashew", "cashews"},
	{"almond", "almonds"},
	{"walnut", "walnuts"},
	{"sea salt", "salt"},
	{"table salt", "salt"},
	{"ground black pepper", "black pepper"},
	{"peppercorns", "black pepper"},
	{"extra virgin olive oil", "olive oil"},
	{"evoo", "olive oil"},
	{"sunflower oil", "vegetable oil"},
	{"rapeseed oil", "vegetable oil"},
	{"canola oil", "vegetable oil"},
	{"cooking oil", "vegetable oil"},
	{"oil", "vegetable oil"},
	{"white wine vinegar", "vinegar"},
	{"cider vinegar", "vinegar"},
	{"soya sauce", "soy sauce"},
	{"light soy sauce", "soy sauce"},
	{"dark soy sauce", "soy sauce"},
	{"worcester sauce", "worcestershire sauce"},
	{"lea perrins", "worcestershire sauce"},
	{"lea & perrins", "worcestershire sauce"},
	{"heinz ketchup", "ketchup"},
	{"tomato ketchup", "ketchup"},
	{"mayo", "mayonnaise"},
	{"hellmanns", "mayonnaise"},
	{"dijon mustard", "mustard"},
	{"wholegrain mustard", "mustard"},
	{"english mustard", "mustard"},
	{"colmans", "mustard"},
	{"thai green curry paste", "curry paste"},
	{"thai red curry paste", "curry paste"},
	{"madras", "curry powder"},
	{"ground cumin", "cumin"},
	{"cumin seeds", "cumin"},
	{"ground turmeric", "turmeric"},
	{"chili flakes", "chilli flakes"},
	{"red pepper flakes", "chilli flakes"},
	{"ground cinnamon", "cinnamon"},
	{"mixed herbs", "dried herbs"},
	{"italian seasoning", "dried herbs"},
	{"herbes de provence", "dried herbs"},
	{"dried oregano", "oregano"},
	{"stock cube", "stock"},
	{"stock cubes", "stock"},
	{"stock pot", "stock"},
	{"stock pots", "stock"},
	{"bouillon", "stock"},
	{"bouillon cube", "stock"},
	{"beef stock", "stock"},
	{"chicken stock", "stock"},
	{"vegetable stock", "stock"},
	{"beef stock cube", "stock"},
	{"chicken stock cube", "stock"},
	{"oxo", "stock"},
	{"oxo cube", "stock"},
	{"knorr", "stock"},
	{"broth", "stock"},
	{"gravy granules", "gravy"},
	{"bisto", "gravy"},
	{"tabasco", "hot sauce"},
	{"lemon juice bottle", "lemon juice"},
	{"jif lemon", "lemon juice"},
})

func synonymMap(pairs [][2]string) map[string]string {
	m := make(map[string]string, len(pairs))
	for _, p := range pairs {
		m[p[0]] = p[1]
	}
	return m
}

var categoryTable = map[Category][]string{
	Dessert: {
		"dessert", "desserts", "cake", "cakes", "cupcake", "cupcakes", "cookie", "cookies",
		"biscuits", "brownie", "brownies", "blondies", "fudge", "muffin", "muffins",
		"cheesecake", "ice cream", "sorbet", "gelato", "mousse", "frosting", "icing",
		"truffles", "macarons", "meringue", "pavlova", "custard", "cobbler", "crumble",
		"tiramisu", "trifle", "sundae", "donut", "donuts", "doughnut", "doughnuts",
		"salted caramel", "candy", "brittle", "shortbread", "scones", "sponge",
		"rice pudding", "bread pudding", "chocolate pudding", "toffee pudding",
		"christmas pudding", "banana pudding", "banana bread", "flapjack", "flapjacks",
		"popsicle", "parfait",
	},
	Drink: {
		"drink", "drinks", "beverage", "beverages", "smoothie", "smoothies", "milkshake",
		"milkshakes", "protein shake", "orange juice", "apple juice", "fruit juice",
		"green juice", "lemonade", "latte", "iced coffee", "hot chocolate", "frappe",
		"frappuccino", "fruit punch", "iced tea", "bubble tea", "chai latte", "slushie",
		"kombucha", "lassi",
	},
	Alcohol: {
		"cocktail", "cocktails", "margarita", "mojito", "sangria", "martini", "daiquiri",
		"mimosa", "negroni", "spritz", "liqueur", "bellini", "cosmopolitan", "eggnog",
		"mulled wine", "gin and tonic", "bloody mary", "pina colada",
	},
	Meat: {
		"beef", "chicken", "lamb", "pork", "ham", "turkey", "steak", "bacon", "sausage",
		"sausages", "mince", "chorizo", "duck", "veal", "venison", "salami", "pepperoni",
		"prosciutto", "meatball", "meatballs", "pancetta", "brisket", "ribs",
	},
	Fish: {
		"fish", "seafood", "salmon", "tuna", "cod", "haddock", "mackerel", "sardines",
		"trout", "prawns", "prawn", "shrimp", "crab", "lobster", "mussels", "scallops",
		"squid", "calamari", "anchovies", "tilapia", "clams", "halibut", "sea bass",
		"fish sauce",
	},
	Dairy: {
		"milk", "butter", "cheese", "cheddar", "parmesan", "mozzarella", "feta", "cream",
		"sour cream", "cream cheese", "yogurt", "creme fraiche", "halloumi", "ricotta",
		"mascarpone", "ghee",
	},
	Egg: {"egg", "eggs", "omelette", "frittata"},
	Pasta: {
		"pasta", "spaghetti", "penne", "macaroni", "fusilli", "lasagne sheets", "noodles",
		"linguine", "tagliatelle", "rigatoni", "orzo", "farfalle", "gnocchi",
	},
	Staple: {
		"salt", "black pepper", "olive oil", "vegetable oil", "sesame oil", "flour",
		"cornflour", "sugar", "rice", "vinegar", "stock", "dried herbs", "onion", "garlic",
		"water", "butter", "honey", "soy sauce", "ketchup", "mayonnaise",
		"oats", "bread",
	},
	Chickpea: {"chickpeas", "chickpea", "hummus", "falafel"},
	Coconut:  {"coconut", "coconut milk", "coconut cream"},
}
