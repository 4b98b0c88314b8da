package call

import "fmt"

// Tool result texts fed back to the model.

func completedResult(fileName string) string {
	return fmt.Sprintf("CONFIRMED: the change to %s was approved and applied.", fileName)
}

func rejectedResult(fileName, feedback string) string {
	return fmt.Sprintf("REJECTED: the user declined the change to %s.\nUser feedback:\n%s", fileName, feedback)
}

func failedResult(fileName string, err error) string {
	return fmt.Sprintf("FAILED: the change to %s could not be applied: %s", fileName, err)
}

func argumentErrorResult(err error) string {
	return fmt.Sprintf("FAILED: %s. Call the tool again with a valid JSON object.", err)
}

func unknownToolResult(name string) string {
	return fmt.Sprintf("FAILED: unknown tool %q. Available tools: ReadFile, WriteFile, ModifyFile.", name)
}
