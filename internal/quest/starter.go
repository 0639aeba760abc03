package quest

import "github.com/you-not-fish/cang/internal/coins"

func reward(c coins.Category, n uint32) coins.Reward {
	return coins.Reward{Category: c, Amount: n}
}

// StarterQuests returns the built-in quest line, roots first.
func StarterQuests() []*Quest {
	return []*Quest{
		New("hello_world", "Hello World",
			"Welcome to cang! Start by performing a simple arithmetic calculation like '2 + 3' to get familiar with the interpreter.",
			Beginner,
			[]Objective{PerformArithmetic{}},
			[]coins.Reward{reward(coins.Variable, 2)}),

		New("print_hello", "Print Hello",
			`Use the print statement to output 'Hello World' to the console. Try: print("Hello World")`,
			Beginner,
			[]Objective{ProduceOutput{Expected: "Hello World"}},
			[]coins.Reward{reward(coins.Variable, 1)},
			"hello_world"),

		New("first_variable", "First Variable",
			"Learn to store values by creating your first variable. Try 'let x = 5' to create a variable named 'x' with value 5.",
			Beginner,
			[]Objective{CreateVariable{}},
			[]coins.Reward{reward(coins.Variable, 3)},
			"hello_world"),

		New("variable_arithmetic", "Variable Arithmetic",
			"Combine variables with arithmetic! Create a variable and then use it in a calculation.",
			Beginner,
			[]Objective{CreateVariable{}, PerformArithmetic{}},
			[]coins.Reward{reward(coins.Variable, 2)},
			"first_variable"),

		New("first_function", "First Function",
			"Define your first function to reuse code. Try 'fn add(a, b) { a + b }' to create a function that adds two numbers.",
			Intermediate,
			[]Objective{DefineFunction{MinParams: 0}},
			[]coins.Reward{reward(coins.Function, 2)},
			"variable_arithmetic"),

		New("function_with_params", "Parameterized Function",
			"Create a function that takes at least one parameter. Parameters make functions flexible and reusable.",
			Intermediate,
			[]Objective{DefineFunction{MinParams: 1}},
			[]coins.Reward{reward(coins.Function, 1)},
			"first_function"),

		New("multiple_variables", "Variable Master",
			"Show your mastery by creating at least 3 different variables in your program.",
			Intermediate,
			[]Objective{UseVariables{Count: 3}},
			[]coins.Reward{reward(coins.Variable, 4)},
			"variable_arithmetic"),

		New("function_caller", "Function Caller",
			"Define a function and then call it! This demonstrates the full function lifecycle.",
			Advanced,
			[]Objective{DefineFunction{MinParams: 1}, CallFunction{}},
			[]coins.Reward{reward(coins.Function, 2), reward(coins.Variable, 2)},
			"function_with_params"),

		New("complex_program", "Complex Program",
			"Create a sophisticated program that uses multiple variables, defines a function, and performs calculations.",
			Advanced,
			[]Objective{UseVariables{Count: 2}, DefineFunction{MinParams: 1}, PerformArithmetic{}},
			[]coins.Reward{reward(coins.Variable, 5), reward(coins.Function, 3)},
			"multiple_variables", "function_caller"),
	}
}

// NewStarterManager returns a manager holding StarterQuests.
func NewStarterManager() *Manager {
	m := NewManager()
	for _, q := range StarterQuests() {
		m.Add(q)
	}
	return m
}
