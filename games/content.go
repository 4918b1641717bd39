/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Words returns the auction word pool, tiered by difficulty.
func Words() *Pool {
	return NewPool([]string{DifficultyEasy, DifficultyMedium, DifficultyHard}, map[string][]string{
		DifficultyEasy: {
			"CAT", "PIZZA", "HAPPY", "HOUSE", "BEACH", "DOG", "TREE", "BALL", "RAIN", "SUN",
			"BOOK", "CHAIR", "BIRD", "FISH", "FLOWER", "MUSIC", "DANCE", "SLEEP", "JUMP", "RUN",
			"SWIM", "COOK", "SMILE", "LAUGH", "CRY", "COLD", "HOT", "BIG", "SMALL", "FAST",
			"SLOW", "RED", "BLUE", "GREEN", "YELLOW", "APPLE", "BANANA", "MILK", "BREAD", "WATER",
			"DOOR", "WINDOW", "TABLE", "BED", "PHONE", "CAR", "TRAIN", "PLANE", "BOAT", "BIKE",
		},
		DifficultyMedium: {
			"TELESCOPE", "BIRTHDAY", "SCIENTIST", "ADVENTURE", "MOUNTAIN", "RAINBOW", "LIBRARY",
			"HOSPITAL", "ELEPHANT", "BUTTERFLY", "VOLCANO", "DINOSAUR", "ASTRONAUT", "SUPERHERO",
			"RESTAURANT", "CHOCOLATE", "STRAWBERRY", "UMBRELLA", "FIREWORKS", "ORCHESTRA",
			"SUBMARINE", "HELICOPTER", "EARTHQUAKE", "THUNDERSTORM", "PHOTOGRAPHY", "SKATEBOARD",
			"TREEHOUSE", "WATERFALL", "GYMNASTICS", "BASKETBALL",
		},
		DifficultyHard: {
			"DEMOCRACY", "FRUSTRATION", "PROCRASTINATE", "SERENDIPITY", "NOSTALGIA", "PHILOSOPHY",
			"IMAGINATION", "PERSEVERANCE", "COLLABORATION", "SUSTAINABILITY", "EMBARRASSMENT",
			"ENTHUSIASM", "DETERMINATION", "ACCOMPLISHMENT", "EXTRAORDINARY", "COMMUNICATION",
			"RESPONSIBILITY", "INDEPENDENCE", "CIVILIZATION", "OPPORTUNITY",
		},
	}).WithDefault(DifficultyMedium)
}

// Categories returns the Quick Think category pool. Tiers are themes, so
// a balanced sequence rotates through them.
func Categories() *Pool {
	return NewPool([]string{"objects", "colors", "places", "people", "abstract", "actions", "popCulture"}, map[string][]string{
		"objects": {
			"Things in a kitchen", "Round things", "Things with wheels", "Things that are soft",
			"Things made of metal", "Things you find at the beach", "Things in a classroom",
			"Things that make noise", "Things you wear", "Things in a toolbox",
			"Things at a playground", "Things in a bathroom", "Things that grow",
			"Things you plug in", "Things in a hospital",
		},
		"colors": {
			"Things that are RED", "Things that are BLUE", "Things that are GREEN", "Yellow foods",
			"Orange things", "Purple things", "Pink things", "White things", "Black things",
			"Brown animals",
		},
		"places": {
			"Countries in Europe", "Cities in America", "Beach destinations", "Mountain locations",
			"Famous landmarks", "Places to eat", "Places to shop", "Cold places", "Hot places",
			"Places to visit",
		},
		"people": {
			"Famous scientists", "Cartoon characters", "Superheroes", "Historical figures",
			"Musicians", "Athletes", "Movie stars", "Book characters", "Inventors", "Artists",
		},
		"abstract": {
			"Things that make you happy", "Reasons to celebrate", "Things that are scary",
			"Things that are funny", "Things you're grateful for", "Things you dream about",
			"Childhood memories", "Things you do for fun", "Things that smell good",
			"Things that taste sweet",
		},
		"actions": {
			"Things you do in the morning", "Sports", "Hobbies", "Dance moves",
			"Things you do outside", "Things you do on vacation", "Things you do at a party",
			"Things you do quietly", "Things you do fast", "Things you do slowly",
		},
		"popCulture": {
			"Disney movies", "Video games", "TV shows", "Song titles", "Board games",
			"Social media apps", "Ice cream flavors", "Pizza toppings", "Breakfast foods",
			"Desserts",
		},
	})
}
