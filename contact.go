package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NikhilKanaujia/portfolio/internal/contact"
)

var formFields = []contact.Field{contact.FieldName, contact.FieldEmail, contact.FieldMessage}

// contactView is what contact.html renders. A nil controller renders an
// empty, idle form.
func contactView(ctrl *contact.Controller) gin.H {
	var (
		fields contact.Fields
		st     contact.Status
	)
	if ctrl != nil {
		fields, st = ctrl.Fields(), ctrl.Status()
	}
	return gin.H{
		"fields":     fields,
		"status":     st,
		"submitting": st.Kind == contact.Submitting,
		"showStatus": st.IsTerminal() && st.Message != "",
		"success":    st.Kind == contact.Success,
	}
}

func isHTMX(c *gin.Context) bool { return c.GetHeader("HX-Request") == "true" }

// applyPostedFields copies any of name/email/message present in the form
// body into the controller. Absent keys leave the field alone.
func applyPostedFields(c *gin.Context, ctrl *contact.Controller) {
	for _, f := range formFields {
		if v, ok := c.GetPostForm(string(f)); ok {
			ctrl.UpdateField(f, v)
		}
	}
}

func (a *app) contactForm(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", contactView(controllerFrom(c)))
}

// updateField takes either an explicit field/value pair or the input's own
// name=value, which is what hx-post on a single input sends.
func (a *app) updateField(c *gin.Context) {
	ctrl := controllerFrom(c)
	if f, ok := c.GetPostForm("field"); ok {
		ctrl.UpdateField(contact.Field(f), c.PostForm("value"))
	} else {
		applyPostedFields(c, ctrl)
	}
	c.Status(http.StatusNoContent)
}

func (a *app) submitContact(c *gin.Context) {
	ctrl := controllerFrom(c)
	applyPostedFields(c, ctrl)

	// The relay call is not aborted if the visitor navigates away.
	st, started := ctrl.Submit(context.WithoutCancel(c.Request.Context()))
	a.metrics.observeSubmit(st, started)

	if !isHTMX(c) {
		c.Redirect(http.StatusSeeOther, "/#contact")
		return
	}
	c.HTML(http.StatusOK, "contact.html", contactView(ctrl))
}
