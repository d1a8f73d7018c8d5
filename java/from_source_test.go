package java

import (
	"strings"
	"testing"

	"github.com/dhamidi/javacomplete/java/parser"
)

func mustModels(t *testing.T, src string) []*ClassModel {
	t.Helper()
	models, err := ClassModelsFromSource([]byte(src))
	if err != nil {
		t.Fatalf("Failed to parse source: %v", err)
	}
	return models
}

func findModel(models []*ClassModel, name string) *ClassModel {
	for _, m := range models {
		if m.Name == name {
			return m
		}
	}
	return nil
}

func TestSingleLineJavadoc(t *testing.T) {
	models := mustModels(t, `package com.example;

/** A single-line javadoc */ public class Test {
    /** Field doc */ private String name;
    /** Method doc */ public void test() {}
}
`)
	if len(models) != 1 {
		t.Fatalf("Expected 1 class model, got %d", len(models))
	}
	cls := models[0]

	if cls.Javadoc != "/** A single-line javadoc */" {
		t.Errorf("Expected class javadoc, got %q", cls.Javadoc)
	}
	if f := cls.Field("name"); f == nil || f.Javadoc != "/** Field doc */" {
		t.Errorf("Expected field javadoc, got %+v", f)
	}
	methods := cls.MethodsNamed("test")
	if len(methods) != 1 || methods[0].Javadoc != "/** Method doc */" {
		t.Errorf("Expected method javadoc, got %+v", methods)
	}
}

func TestJavadocMustBeAdjacent(t *testing.T) {
	models := mustModels(t, `/** Orphan */
import java.util.List;

@Deprecated
public class Old {
    /** Detached */
    int x;
    // a line comment in between is fine
    /** @deprecated use y */
    // trailing note
    int z;
}
`)
	cls := models[0]
	if cls.Javadoc != "" {
		t.Errorf("class should have no javadoc, got %q", cls.Javadoc)
	}
	if !cls.IsDeprecated {
		t.Errorf("@Deprecated class should be deprecated")
	}
	if got := cls.Field("x").Javadoc; got != "/** Detached */" {
		t.Errorf("field x javadoc = %q", got)
	}
	if !cls.Field("z").IsDeprecated {
		t.Errorf("field z should be deprecated through its javadoc")
	}
}

func TestClassModelMembers(t *testing.T) {
	models := mustModels(t, `package shop;

import java.util.List;
import java.util.*;

public abstract class Cart<T extends Item> extends Base implements Iterable<T>, Sized {
    public static final int MAX = 10, MIN = 0;
    protected List<T> items;
    private String[] tags;

    public Cart(List<T> items) throws IllegalStateException {}

    public abstract <R> R fold(R init, java.util.function.BiFunction<R, ? super T, R> f);

    static void log(String fmt, Object... args) {}
}
`)
	if len(models) != 1 {
		t.Fatalf("Expected 1 class model, got %d", len(models))
	}
	cls := models[0]

	if cls.Name != "shop.Cart" || cls.SimpleName != "Cart" || cls.Package != "shop" {
		t.Errorf("unexpected names %q %q %q", cls.Name, cls.SimpleName, cls.Package)
	}
	if !cls.IsAbstract || cls.Visibility != VisibilityPublic {
		t.Errorf("expected public abstract class")
	}
	if cls.SuperClass == nil || cls.SuperClass.Name != "Base" {
		t.Errorf("superclass should stay unresolved, got %v", cls.SuperClass)
	}
	if len(cls.Interfaces) != 2 || cls.Interfaces[0].String() != "Iterable<T>" {
		t.Errorf("unexpected interfaces %v", cls.Interfaces)
	}
	if len(cls.TypeParameters) != 1 || cls.TypeParameters[0].Bounds[0].Name != "Item" {
		t.Errorf("unexpected type parameters %+v", cls.TypeParameters)
	}
	if len(cls.Imports) != 2 || !cls.Imports[1].Wildcard || cls.Imports[1].Name != "java.util" {
		t.Errorf("unexpected imports %+v", cls.Imports)
	}

	if len(cls.Fields) != 4 {
		t.Fatalf("Expected 4 fields, got %d", len(cls.Fields))
	}
	if f := cls.Field("MIN"); !f.IsStatic || !f.IsFinal || f.Type.Name != "int" {
		t.Errorf("MIN should be a static final int, got %+v", f)
	}
	if got := cls.Field("items").Type.String(); got != "java.util.List<T>" {
		t.Errorf("items type = %q", got)
	}
	if f := cls.Field("tags"); f.Type.ArrayDepth != 1 || f.Visibility != VisibilityPrivate {
		t.Errorf("unexpected tags field %+v", f)
	}
	if f := cls.Field("items"); f.Node == nil || f.Node.Kind != parser.KindVarDeclarator {
		t.Errorf("field node should be its declarator")
	}

	ctors := cls.MethodsNamed(ConstructorName)
	if len(ctors) != 1 || len(ctors[0].Exceptions) != 1 || ctors[0].Exceptions[0].Name != "IllegalStateException" {
		t.Errorf("unexpected constructors %+v", ctors)
	}
	fold := cls.MethodsNamed("fold")[0]
	if !fold.IsAbstract || fold.ReturnType.Name != "R" || len(fold.Parameters) != 2 {
		t.Errorf("unexpected fold %+v", fold)
	}
	if got := fold.Parameters[1].Type.String(); got != "java.util.function.BiFunction<R,? super T,R>" {
		t.Errorf("fold parameter type = %q", got)
	}
	log := cls.MethodsNamed("log")[0]
	if !log.IsVarargs || !log.IsStatic || log.Parameters[1].Type.ArrayDepth != 1 {
		t.Errorf("log should be static varargs, got %+v", log)
	}
}

func TestImplicitMembers(t *testing.T) {
	models := mustModels(t, `package p;
enum Day { MON, TUE }
record Point(int x, int y) { }
interface Shape { int SIDES = 0; double area(); default String name() { return ""; } }
class Plain { }
@interface Marker { }
`)
	day := findModel(models, "p.Day")
	if day == nil {
		t.Fatal("Day not found")
	}
	if strings.Join(day.EnumConstants, ",") != "MON,TUE" || !day.Field("MON").IsEnumConstant {
		t.Errorf("unexpected enum constants %v", day.EnumConstants)
	}
	if day.SuperClass.String() != "java.lang.Enum<p.Day>" {
		t.Errorf("enum superclass = %s", day.SuperClass)
	}
	if len(day.MethodsNamed("values")) != 1 || len(day.MethodsNamed("valueOf")) != 1 {
		t.Errorf("enum should have values and valueOf")
	}
	if ctor := day.MethodsNamed(ConstructorName); len(ctor) != 1 || ctor[0].Visibility != VisibilityPrivate {
		t.Errorf("enum should have a private default constructor")
	}

	point := findModel(models, "p.Point")
	if point.Field("x") == nil || len(point.MethodsNamed("y")) != 1 {
		t.Errorf("record should have fields and accessors")
	}
	if ctor := point.MethodsNamed(ConstructorName); len(ctor) != 1 || len(ctor[0].Parameters) != 2 {
		t.Errorf("record should have a canonical constructor")
	}

	shape := findModel(models, "p.Shape")
	if f := shape.Field("SIDES"); !f.IsStatic || !f.IsFinal || f.Visibility != VisibilityPublic {
		t.Errorf("interface fields are public static final, got %+v", f)
	}
	if area := shape.MethodsNamed("area")[0]; !area.IsAbstract || area.Visibility != VisibilityPublic {
		t.Errorf("interface methods are public abstract, got %+v", area)
	}
	if name := shape.MethodsNamed("name")[0]; name.IsAbstract || !name.IsDefault {
		t.Errorf("default methods are not abstract")
	}
	if len(shape.MethodsNamed(ConstructorName)) != 0 {
		t.Errorf("interfaces have no constructors")
	}

	plain := findModel(models, "p.Plain")
	if plain.SuperClass.Name != "java.lang.Object" || len(plain.MethodsNamed(ConstructorName)) != 1 {
		t.Errorf("classes extend Object and get a default constructor")
	}
	marker := findModel(models, "p.Marker")
	if len(marker.Interfaces) != 1 || marker.Interfaces[0].Name != "java.lang.annotation.Annotation" {
		t.Errorf("annotation types implement Annotation, got %v", marker.Interfaces)
	}
}

func TestNestedClassResolution(t *testing.T) {
	models := mustModels(t, `package com.example;

import java.util.Map;

public class Outer {
    private Inner inner;
    private Map.Entry<String, Inner.Deep> entry;

    public static class Inner {
        class Deep { Outer back; }
    }

    interface Callback { }
}
`)
	if len(models) != 4 {
		t.Fatalf("Expected 4 class models, got %d", len(models))
	}
	outer := models[0]
	if got := outer.Field("inner").Type.Name; got != "com.example.Outer.Inner" {
		t.Errorf("inner type = %q", got)
	}
	if got := outer.Field("entry").Type.String(); got != "java.util.Map.Entry<String,com.example.Outer.Inner.Deep>" {
		t.Errorf("entry type = %q", got)
	}
	if len(outer.InnerClasses) != 2 {
		t.Errorf("unexpected inner classes %v", outer.InnerClasses)
	}

	deep := findModel(models, "com.example.Outer.Inner.Deep")
	if deep == nil || deep.EnclosingClass != "com.example.Outer.Inner" {
		t.Fatalf("Deep not found or misplaced")
	}
	if deep.Outermost() != "com.example.Outer" {
		t.Errorf("Outermost = %q", deep.Outermost())
	}
	if got := deep.Field("back").Type.Name; got != "com.example.Outer" {
		t.Errorf("back type = %q", got)
	}
	if cb := findModel(models, "com.example.Outer.Callback"); cb == nil || !cb.IsStatic {
		t.Errorf("member interfaces are static")
	}
}

func TestAnnotationValues(t *testing.T) {
	models := mustModels(t, `@SuppressWarnings({"unchecked", "rawtypes"})
@Retention(RetentionPolicy.RUNTIME)
@Named("x")
class A { }
`)
	anns := models[0].Annotations
	if len(anns) != 3 {
		t.Fatalf("Expected 3 annotations, got %d", len(anns))
	}
	if vals, ok := anns[0].Values["value"].([]interface{}); !ok || len(vals) != 2 {
		t.Errorf("unexpected array value %v", anns[0].Values)
	}
	if got := anns[1].Values["value"]; got != "RetentionPolicy.RUNTIME" {
		t.Errorf("unexpected enum value %v", got)
	}
	if got := anns[2].Values["value"]; got != `"x"` {
		t.Errorf("unexpected string value %v", got)
	}
}

func TestPackageAndModule(t *testing.T) {
	p := parser.ParseCompilationUnit(strings.NewReader(`open module com.example.app {
    requires transitive java.sql;
    exports com.example.api;
}`), parser.WithFile("module-info.java"))
	cu := p.Finish()
	m := ModuleModelFromCompilationUnit(cu)
	if m == nil {
		t.Fatal("expected a module model")
	}
	if m.Name != "com.example.app" || !m.IsOpen || m.SourceFile != "module-info.java" {
		t.Errorf("unexpected module %+v", m)
	}
	if len(m.Requires) != 1 || m.Requires[0] != "java.sql" || m.Exports[0] != "com.example.api" {
		t.Errorf("unexpected directives %+v", m)
	}

	cu = parser.ParseCompilationUnit(strings.NewReader("@Deprecated package com.example.util;")).Finish()
	if got := PackageOf(cu); got != "com.example.util" {
		t.Errorf("PackageOf = %q", got)
	}
	if ModuleModelFromCompilationUnit(cu) != nil {
		t.Errorf("no module declared")
	}
}
