package main

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/otterlog/daypulse/pkg/models"
)

// PlannerTab manages the reusable task templates: the template form, the
// category-grouped list, and the AI helpers for designing templates and
// category alert wording.
type PlannerTab struct {
	dp *DayPulse

	tasks  []models.Task
	filter string

	status        *widget.Label
	list          *fyne.Container
	search        *widget.Entry
	editingTaskID int

	formName       *widget.Entry
	formCategory   *widget.Entry
	formDuration   *widget.Entry
	formRecurrence *widget.Entry
	formWindow     *widget.Entry
	formStyle      *widget.Select
	formEnabled    *widget.Check
	submit         *widget.Button

	aiFreeText *widget.Entry
	aiStatus   *widget.Label

	wordingCategory *widget.Select
	wordingCurrent  *widget.Label
	wordingTone     *widget.Entry
	wordingOptions  *fyne.Container
	wordingStatus   *widget.Label
}

func NewPlannerTab(dp *DayPulse) *PlannerTab {
	p := &PlannerTab{
		dp:     dp,
		status: widget.NewLabel(""),
		list:   container.NewVBox(),

		aiStatus:      widget.NewLabel(""),
		wordingStatus: widget.NewLabel(""),
	}

	p.search = widget.NewEntry()
	p.search.SetPlaceHolder("Filter templates...")
	p.search.OnChanged = func(text string) {
		p.filter = strings.ToLower(strings.TrimSpace(text))
		p.renderTasks()
	}

	p.formName = widget.NewEntry()
	p.formName.SetPlaceHolder("Name")
	p.formCategory = widget.NewEntry()
	p.formCategory.SetPlaceHolder("Category")
	p.formDuration = widget.NewEntry()
	p.formDuration.SetPlaceHolder("Duration (minutes)")
	p.formRecurrence = widget.NewEntry()
	p.formRecurrence.SetPlaceHolder("Recurrence (e.g. daily, weekdays)")
	p.formWindow = widget.NewEntry()
	p.formWindow.SetPlaceHolder("Preferred window (e.g. morning)")
	p.formStyle = widget.NewSelect([]string{"visual_then_alarm", "visual_only"}, nil)
	p.formStyle.SetSelected("visual_then_alarm")
	p.formEnabled = widget.NewCheck("Enabled", nil)
	p.formEnabled.SetChecked(true)
	p.submit = widget.NewButton("Save template", func() {
		p.submitForm()
	})

	p.aiFreeText = widget.NewMultiLineEntry()
	p.aiFreeText.SetPlaceHolder("Describe your routine in 1-3 sentences...")
	p.aiFreeText.Wrapping = fyne.TextWrapWord

	p.wordingCategory = widget.NewSelect(nil, func(category string) {
		p.loadWording(category)
	})
	p.wordingCurrent = widget.NewLabel("")
	p.wordingCurrent.Wrapping = fyne.TextWrapWord
	p.wordingTone = widget.NewEntry()
	p.wordingTone.SetPlaceHolder("Tone (e.g. encouraging, firm)")
	p.wordingOptions = container.NewVBox()

	return p
}

func (p *PlannerTab) Content() fyne.CanvasObject {
	suggestButton := widget.NewButton("Design with AI", func() {
		p.suggestTemplates()
	})
	aiSection := container.NewVBox(
		widget.NewLabel("Describe a routine and let the assistant draft a template"),
		p.aiFreeText,
		container.NewHBox(suggestButton),
		p.aiStatus,
	)

	form := container.NewVBox(
		p.formName,
		container.NewGridWithColumns(2, p.formCategory, p.formDuration),
		container.NewGridWithColumns(2, p.formRecurrence, p.formWindow),
		container.NewGridWithColumns(2, p.formStyle, p.formEnabled),
		p.submit,
		p.status,
	)

	optionsButton := widget.NewButton("Get wording options", func() {
		p.requestWordingOptions()
	})
	wordingSection := container.NewVBox(
		widget.NewSeparator(),
		widget.NewLabel("Alert wording per category"),
		container.NewGridWithColumns(2, p.wordingCategory, p.wordingTone),
		p.wordingCurrent,
		optionsButton,
		p.wordingStatus,
		p.wordingOptions,
	)

	left := container.NewVBox(aiSection, widget.NewSeparator(), form, wordingSection)
	right := container.NewBorder(p.search, nil, nil, nil, container.NewVScroll(p.list))

	return container.NewHSplit(container.NewVScroll(left), right)
}

// Reload refetches templates from the server
func (p *PlannerTab) Reload() {
	go func() {
		tasks, err := p.dp.client.ListTasks()
		fyne.Do(func() {
			if err != nil {
				log.Printf("Failed to load templates: %v", err)
				p.setStatus("Could not load templates.", true)
				return
			}
			p.tasks = tasks
			p.renderTasks()
			p.updateWordingCategories()
		})
	}()
}

func (p *PlannerTab) renderTasks() {
	p.list.RemoveAll()

	groups := make(map[string][]models.Task)
	for _, t := range p.tasks {
		if p.filter != "" {
			haystack := strings.ToLower(t.Name + " " + t.Category)
			if !strings.Contains(haystack, p.filter) {
				continue
			}
		}
		groups[t.Category] = append(groups[t.Category], t)
	}

	categories := make([]string, 0, len(groups))
	for c := range groups {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	for _, category := range categories {
		header := widget.NewLabel(category)
		header.TextStyle = fyne.TextStyle{Bold: true}
		p.list.Add(header)
		for _, t := range groups[category] {
			p.list.Add(p.buildTaskRow(t))
		}
	}

	if len(categories) == 0 {
		p.list.Add(widget.NewLabel("No templates yet."))
	}
	p.list.Refresh()
}

func (p *PlannerTab) buildTaskRow(t models.Task) fyne.CanvasObject {
	title := widget.NewLabel(fmt.Sprintf("%s · %dm", t.Name, t.DefaultDurationMinutes))

	badges := []string{"alert: " + t.DefaultAlertStyle}
	if t.RecurrencePattern != "" {
		badges = append(badges, "recurrence: "+t.RecurrencePattern)
	}
	if t.PreferredTimeWindow != "" {
		badges = append(badges, "window: "+t.PreferredTimeWindow)
	}
	if t.Enabled {
		badges = append(badges, "enabled")
	} else {
		badges = append(badges, "disabled")
	}
	meta := widget.NewLabel(strings.Join(badges, " · "))

	editButton := widget.NewButton("Edit", func() {
		p.loadForm(t, t.ID)
		p.setStatus("Editing existing template...", false)
	})
	refineButton := widget.NewButton("Refine with AI", func() {
		p.refineTemplate(t)
	})
	deleteButton := widget.NewButton("Delete", func() {
		p.deleteTask(t)
	})

	return container.NewVBox(
		title,
		meta,
		container.NewHBox(editButton, refineButton, deleteButton),
		widget.NewSeparator(),
	)
}

// loadForm fills the template form; editingID 0 means a save creates a new
// template.
func (p *PlannerTab) loadForm(t models.Task, editingID int) {
	p.formName.SetText(t.Name)
	p.formCategory.SetText(t.Category)
	p.formDuration.SetText(strconv.Itoa(t.DefaultDurationMinutes))
	p.formRecurrence.SetText(t.RecurrencePattern)
	p.formWindow.SetText(t.PreferredTimeWindow)
	style := t.DefaultAlertStyle
	if style == "" {
		style = "visual_then_alarm"
	}
	p.formStyle.SetSelected(style)
	p.formEnabled.SetChecked(t.Enabled)
	p.editingTaskID = editingID
	if editingID == 0 {
		p.submit.SetText("Save template")
	} else {
		p.submit.SetText("Update template")
	}
}

func (p *PlannerTab) resetForm() {
	p.loadForm(models.Task{Enabled: true, DefaultAlertStyle: "visual_then_alarm"}, 0)
	p.formDuration.SetText("")
}

func (p *PlannerTab) submitForm() {
	name := strings.TrimSpace(p.formName.Text)
	category := strings.TrimSpace(p.formCategory.Text)
	duration, err := strconv.Atoi(strings.TrimSpace(p.formDuration.Text))
	if name == "" || category == "" || err != nil || duration <= 0 {
		p.setStatus("Please provide name, category, and a positive duration.", true)
		return
	}

	task := models.Task{
		ID:                     p.editingTaskID,
		Name:                   name,
		Category:               category,
		DefaultDurationMinutes: duration,
		RecurrencePattern:      strings.TrimSpace(p.formRecurrence.Text),
		PreferredTimeWindow:    strings.TrimSpace(p.formWindow.Text),
		DefaultAlertStyle:      p.formStyle.Selected,
		Enabled:                p.formEnabled.Checked,
	}

	updating := p.editingTaskID != 0
	go func() {
		var err error
		if updating {
			_, err = p.dp.client.UpdateTask(task)
		} else {
			_, err = p.dp.client.CreateTask(task)
		}
		fyne.Do(func() {
			if err != nil {
				log.Printf("Failed to save template: %v", err)
				p.setStatus("Error saving template.", true)
				return
			}
			p.resetForm()
			if updating {
				p.setStatus("Template updated.", false)
			} else {
				p.setStatus("Template saved.", false)
			}
			p.Reload()
		})
	}()
}

func (p *PlannerTab) deleteTask(t models.Task) {
	dialog.ShowConfirm("Delete template",
		"Delete this template? This will remove it from future schedules.",
		func(confirmed bool) {
			if !confirmed {
				return
			}
			go func() {
				if err := p.dp.client.DeleteTask(t.ID); err != nil {
					log.Printf("Failed to delete template %d: %v", t.ID, err)
					fyne.Do(func() {
						p.setStatus("Error deleting template.", true)
					})
					return
				}
				fyne.Do(func() {
					if p.editingTaskID == t.ID {
						p.resetForm()
					}
					p.Reload()
				})
			}()
		}, p.dp.mainWindow)
}

func (p *PlannerTab) suggestTemplates() {
	text := strings.TrimSpace(p.aiFreeText.Text)
	if text == "" {
		p.setAIStatus("Describe your routine in 1-3 sentences before asking the assistant.", true)
		return
	}
	p.setAIStatus("Designing routine templates...", false)

	go func() {
		templates, err := p.dp.client.TemplateSuggestions(text)
		fyne.Do(func() {
			if err != nil {
				log.Printf("AI template suggestions failed: %v", err)
				p.setAIStatus("Could not design routine templates right now.", true)
				return
			}
			if len(templates) == 0 {
				p.setAIStatus("The assistant did not return any usable templates.", true)
				return
			}
			p.loadForm(templates[0], 0)
			p.setAIStatus(fmt.Sprintf("Loaded 1 of %d suggested templates into the form.", len(templates)), false)
			p.setStatus("Review the suggestion and save when it looks right.", false)
		})
	}()
}

func (p *PlannerTab) refineTemplate(t models.Task) {
	instruction := widget.NewEntry()
	instruction.SetPlaceHolder(`e.g. "shorten evening routine", "gentler tone"`)

	items := []*widget.FormItem{
		widget.NewFormItem("Adjustment (optional)", instruction),
	}
	dialog.ShowForm("Refine with AI", "Refine", "Cancel", items, func(confirmed bool) {
		if !confirmed {
			return
		}
		p.setStatus("Refining this template...", false)
		go func() {
			refined, err := p.dp.client.RefineTemplate(t, strings.TrimSpace(instruction.Text))
			fyne.Do(func() {
				if err != nil {
					log.Printf("AI template refine failed: %v", err)
					p.setStatus("Could not refine template.", true)
					return
				}
				p.loadForm(refined, t.ID)
				p.setStatus("Refinement loaded. Review and update when ready.", false)
			})
		}()
	}, p.dp.mainWindow)
}

func (p *PlannerTab) updateWordingCategories() {
	seen := make(map[string]bool)
	categories := []string{}
	for _, t := range p.tasks {
		if t.Category != "" && !seen[t.Category] {
			seen[t.Category] = true
			categories = append(categories, t.Category)
		}
	}
	sort.Strings(categories)

	selected := p.wordingCategory.Selected
	p.wordingCategory.Options = categories
	p.wordingCategory.Refresh()
	if selected == "" && len(categories) > 0 {
		p.wordingCategory.SetSelected(categories[0])
	}
}

func (p *PlannerTab) loadWording(category string) {
	if category == "" {
		return
	}
	go func() {
		wording, err := p.dp.client.AlertWording(category)
		fyne.Do(func() {
			if err != nil {
				log.Printf("Failed to load alert wording for %q: %v", category, err)
				p.wordingCurrent.SetText("")
				return
			}
			if wording.Text == "" {
				p.wordingCurrent.SetText("No custom wording for this category yet.")
			} else {
				p.wordingCurrent.SetText(fmt.Sprintf("Current (%s): %s", wording.Tone, wording.Text))
			}
		})
	}()
}

func (p *PlannerTab) requestWordingOptions() {
	category := p.wordingCategory.Selected
	tone := strings.TrimSpace(p.wordingTone.Text)
	if category == "" {
		p.setWordingStatus("Pick a category first.", true)
		return
	}
	if tone == "" {
		p.setWordingStatus("Please describe the tone you want (e.g. encouraging, firm).", true)
		return
	}

	p.setWordingStatus("Asking for alert wording options...", false)
	p.wordingOptions.RemoveAll()
	p.wordingOptions.Refresh()

	req := models.WordingRequest{Category: category, Tone: tone, MaxLength: 120, Count: 5}
	go func() {
		options, err := p.dp.client.WordingOptions(req)
		fyne.Do(func() {
			if err != nil {
				log.Printf("AI alert wording request failed: %v", err)
				p.setWordingStatus("Could not get alert wording suggestions right now.", true)
				return
			}
			if len(options) == 0 {
				p.setWordingStatus("The assistant did not return any usable alert texts.", true)
				return
			}
			p.setWordingStatus("Pick an option below to save it for this category.", false)
			for _, text := range options {
				text := text
				p.wordingOptions.Add(widget.NewButton(text, func() {
					p.saveWording(category, tone, text)
				}))
			}
			p.wordingOptions.Refresh()
		})
	}()
}

func (p *PlannerTab) saveWording(category, tone, text string) {
	go func() {
		_, err := p.dp.client.SaveAlertWording(category, models.AlertWording{Tone: tone, Text: text})
		fyne.Do(func() {
			if err != nil {
				log.Printf("Failed to save alert wording: %v", err)
				p.setWordingStatus("Error saving alert wording.", true)
				return
			}
			p.setWordingStatus("Alert wording saved for this category.", false)
			p.loadWording(category)
		})
	}()
}

func (p *PlannerTab) setStatus(text string, isError bool) {
	setStatusLabel(p.status, text, isError)
}

func (p *PlannerTab) setAIStatus(text string, isError bool) {
	setStatusLabel(p.aiStatus, text, isError)
}

func (p *PlannerTab) setWordingStatus(text string, isError bool) {
	setStatusLabel(p.wordingStatus, text, isError)
}

func setStatusLabel(label *widget.Label, text string, isError bool) {
	label.SetText(text)
	if isError {
		label.Importance = widget.DangerImportance
	} else {
		label.Importance = widget.MediumImportance
	}
	label.Refresh()
}
