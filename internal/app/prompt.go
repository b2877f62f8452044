package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"nutrition-tracker/internal/nutrition"
)

const promptText = "Enter a food item to get its nutritional info (e.g., 'apple', 'chicken breast'): "

// ErrNoInput is returned when input ends before a valid food item was entered.
var ErrNoInput = errors.New("no food item entered")

// Prompt asks for a food item until a valid one is entered or in is exhausted.
func Prompt(in io.Reader, out io.Writer) (nutrition.FoodQuery, error) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, promptText)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			if err := scanner.Err(); err != nil {
				return nutrition.FoodQuery{}, fmt.Errorf("failed to read input: %w", err)
			}
			return nutrition.FoodQuery{}, ErrNoInput
		}

		q, err := nutrition.ParseFoodQuery(scanner.Text())
		switch {
		case errors.Is(err, nutrition.ErrEmptyQuery):
			fmt.Fprintln(out, "Food item cannot be empty. Please enter something.")
		case errors.Is(err, nutrition.ErrInvalidQuery):
			fmt.Fprintln(out, "Invalid input. Please enter a food item using only letters and spaces.")
		default:
			return q, nil
		}
	}
}
