package domain

// OrderType est une entrée du catalogue des commandes.
type OrderType struct {
	Value string
	Label string
	Emoji string
	Price string
}

// OrderCatalog est la liste fixe des commandes proposées, dans l'ordre du menu.
var OrderCatalog = []OrderType{
	{Value: "conspiracy_2", Label: "Конспирация II", Emoji: "🕵️", Price: "150.000-190.000"},
	{Value: "conspiracy_2_activated", Label: "Конспирация II с активацией контракта", Emoji: "🔐", Price: "150.000-190.000 + 15.000"},
	{Value: "valuable_lesson", Label: "Ценный урок", Emoji: "📚", Price: "80.000-100.000"},
	{Value: "valuable_lesson_activated", Label: "Ценный урок с активацией контракта", Emoji: "📝", Price: "80.000-100.000 + 5.000"},
	{Value: "valuable_batch", Label: "Ценная партия", Emoji: "💎", Price: "178.000"},
	{Value: "illegal_business", Label: "Незаконное предприятие", Emoji: "🏭", Price: "174.000"},
	{Value: "illegal_business_activated", Label: "Незаконное предприятие с активацией контракта", Emoji: "⚙️", Price: "189.000"},
	{Value: "grover_1", Label: "Гровер I", Emoji: "🌱", Price: "137.000"},
	{Value: "grover_1_activated", Label: "Гровер I с активацией контракта", Emoji: "🌿", Price: "142.000"},
}

// LookupOrder renvoie l'entrée du catalogue pour value.
func LookupOrder(value string) (OrderType, error) {
	for _, o := range OrderCatalog {
		if o.Value == value {
			return o, nil
		}
	}
	return OrderType{}, ErrUnknownOrderType
}
