package category

// itemRule maps a keyword group to an item-level category label. Rules are
// evaluated in order; the first group with a matching keyword wins.
type itemRule struct {
	Label    string
	Keywords []string
}

var itemRules = []itemRule{
	{
		Label:    "Food & Dining",
		Keywords: []string{"coffee", "tea", "latte", "espresso", "meal", "pizza", "burger", "sandwich", "salad", "bagel", "donut", "muffin", "breakfast", "lunch", "dinner", "snack", "juice", "soda", "water bottle"},
	},
	{
		Label:    "Transportation",
		Keywords: []string{"gas", "fuel", "diesel", "parking", "uber", "lyft", "taxi", "toll", "transit", "metro", "bus fare", "car wash"},
	},
	{
		Label:    "Office Supplies",
		Keywords: []string{"pen", "pencil", "paper", "notebook", "stapler", "ink", "toner", "envelope", "folder", "binder", "marker"},
	},
	{
		Label:    "Entertainment",
		Keywords: []string{"movie", "ticket", "game", "concert", "theater", "streaming", "arcade"},
	},
	{
		Label:    "Health & Medical",
		Keywords: []string{"pharmacy", "medicine", "prescription", "vitamin", "aspirin", "bandage", "clinic", "first aid"},
	},
	{
		Label:    "Shopping",
		Keywords: []string{"shirt", "pants", "shoes", "jacket", "dress", "clothing", "apparel", "socks", "hat"},
	},
	{
		Label:    "Technology",
		Keywords: []string{"cable", "charger", "battery", "laptop", "phone", "mouse", "keyboard", "usb", "headphone", "adapter"},
	},
}

// suggestionRule is one weighted receipt-level rule. A rule fires when at
// least one keyword appears in the combined merchant+items text; it resolves
// when one of its candidate names matches a category the user actually has.
type suggestionRule struct {
	Keywords       []string
	CandidateNames []string
	BaseConfidence float64
}

var suggestionRules = []suggestionRule{
	{
		Keywords:       []string{"starbucks", "coffee", "cafe", "restaurant", "pizza", "burger", "diner", "bakery", "food", "grill", "kitchen", "bistro", "sushi", "taco", "hortons", "mcdonald", "subway", "chipotle"},
		CandidateNames: []string{"Food & Dining", "Food", "Dining", "Restaurants", "Groceries"},
		BaseConfidence: 0.9,
	},
	{
		Keywords:       []string{"shell", "chevron", "exxon", "gas", "fuel", "uber", "lyft", "parking", "transit", "taxi", "toll"},
		CandidateNames: []string{"Transportation", "Transport", "Auto", "Car", "Commute"},
		BaseConfidence: 0.9,
	},
	{
		Keywords:       []string{"cvs", "walgreens", "pharmacy", "clinic", "hospital", "dental", "medical", "health"},
		CandidateNames: []string{"Healthcare", "Health & Medical", "Health", "Medical"},
		BaseConfidence: 0.9,
	},
	{
		Keywords:       []string{"cinema", "movie", "netflix", "spotify", "concert", "theater", "game"},
		CandidateNames: []string{"Entertainment", "Fun", "Leisure"},
		BaseConfidence: 0.85,
	},
	{
		Keywords:       []string{"electric", "hydro", "water bill", "internet", "broadband", "phone bill", "utility", "utilities"},
		CandidateNames: []string{"Utilities", "Bills"},
		BaseConfidence: 0.85,
	},
	{
		Keywords:       []string{"hotel", "airline", "flight", "airbnb", "hostel", "travel", "rental car"},
		CandidateNames: []string{"Travel", "Trips", "Vacation"},
		BaseConfidence: 0.85,
	},
	{
		Keywords:       []string{"home depot", "lowes", "ikea", "garden", "furniture", "hardware", "paint"},
		CandidateNames: []string{"Home & Garden", "Home", "House"},
		BaseConfidence: 0.8,
	},
	{
		Keywords:       []string{"tuition", "course", "textbook", "school", "university", "udemy", "coursera"},
		CandidateNames: []string{"Education", "Learning", "School"},
		BaseConfidence: 0.8,
	},
	{
		Keywords:       []string{"walmart", "target", "amazon", "costco", "store", "market", "mall", "outlet"},
		CandidateNames: []string{"Shopping", "Retail", "General"},
		BaseConfidence: 0.8,
	},
	{
		Keywords:       []string{"staples", "office", "consulting", "software", "subscription", "saas", "license"},
		CandidateNames: []string{"Business", "Office Supplies", "Work"},
		BaseConfidence: 0.75,
	},
}

// defaultCategory seeds a user's category set on first suggestion.
type defaultCategory struct {
	Name        string
	Description string
	Color       string
}

var defaultCategories = []defaultCategory{
	{Name: "Food & Dining", Description: "Restaurants, cafes and groceries", Color: "#ef4444"},
	{Name: "Transportation", Description: "Fuel, parking and rides", Color: "#f97316"},
	{Name: "Shopping", Description: "Retail and online purchases", Color: "#eab308"},
	{Name: "Entertainment", Description: "Movies, games and events", Color: "#84cc16"},
	{Name: "Healthcare", Description: "Pharmacies and medical services", Color: "#22c55e"},
	{Name: "Utilities", Description: "Power, water and connectivity", Color: "#14b8a6"},
	{Name: "Home & Garden", Description: "Furniture, hardware and upkeep", Color: "#3b82f6"},
	{Name: "Education", Description: "Courses, books and tuition", Color: "#8b5cf6"},
	{Name: "Travel", Description: "Flights, hotels and trips", Color: "#ec4899"},
	{Name: "Business", Description: "Work tools and services", Color: "#64748b"},
}
