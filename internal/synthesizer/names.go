package synthesizer

// defaultNames is the pool customer names are drawn from. Kiosk orders only
// ask for a first name to call out at pickup.
var defaultNames = []string{
	"Aaron", "Abigail", "Adam", "Adrian", "Aisha", "Alan", "Alice",
	"Amanda", "Amir", "Andrea", "Andrew", "Angela", "Anna", "Anthony",
	"Ben", "Brandon", "Brenda", "Brian", "Carlos", "Carol", "Catherine",
	"Charles", "Chloe", "Chris", "Daniel", "David", "Deborah", "Diana",
	"Diego", "Dylan", "Elena", "Emily", "Emma", "Eric", "Ethan",
	"Fatima", "Frank", "Grace", "Hannah", "Hiro", "Ian", "Isabella",
	"Jack", "James", "Jasmine", "Jason", "Jennifer", "Jessica", "John",
	"Jose", "Joshua", "Julia", "Justin", "Karen", "Kevin", "Kim",
	"Laura", "Lauren", "Leo", "Linda", "Lisa", "Lucas", "Luis",
	"Madison", "Maria", "Mark", "Matthew", "Megan", "Mei", "Michael",
	"Michelle", "Mohammed", "Nathan", "Nicole", "Noah", "Olivia", "Omar",
	"Patricia", "Paul", "Priya", "Rachel", "Raj", "Rebecca", "Robert",
	"Ryan", "Samantha", "Samuel", "Sarah", "Sofia", "Sophia", "Stephanie",
	"Steven", "Susan", "Thomas", "Tiffany", "Tyler", "Victor", "Wei",
	"William", "Yuki", "Zachary", "Zoe",
}

// DefaultNames returns a copy of the built-in customer name pool
func DefaultNames() []string {
	return append([]string(nil), defaultNames...)
}
